package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	request "servicios_locales/internal/adapter/http/dto/request"
	response "servicios_locales/internal/adapter/http/dto/response"
	"servicios_locales/internal/adapter/http/middleware"
	"servicios_locales/internal/domain/lifecycle"
	"servicios_locales/internal/usecase"
	"servicios_locales/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest     = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInvalidReservation = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid reservation id", http.StatusBadRequest)
	errUnauthenticated    = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid bearer token", http.StatusUnauthorized)
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
type ReservationHandler struct {
	usecase usecase.IReservationUseCase
	log     *slog.Logger
}

func NewReservationHandler(uc usecase.IReservationUseCase, logger *slog.Logger) *ReservationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationHandler{usecase: uc, log: logger.With(slog.String("component", "reservation_handler"))}
}

// Create godoc
// @Summary      Book a service
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateReservationRequest  true  "Reservation"
// @Success      201   {object}  response.ReservationResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      401   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}
	var payload request.CreateReservationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	detail, err := h.usecase.Create(c.Request.Context(), callerID, payload.ToInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromReservationDetail(detail))
}

// GetByID godoc
// @Summary      Get a reservation
// @Tags         reservas
// @Produce      json
// @Param        id   path      int  true  "Reservation id"
// @Success      200  {object}  response.ReservationResponse
// @Failure      401  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id} [get]
func (h *ReservationHandler) GetByID(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := reservationID(c)
	if !ok {
		return
	}

	detail, err := h.usecase.GetByID(c.Request.Context(), id, callerID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservationDetail(detail))
}

// ListForClient godoc
// @Summary      List the caller's reservations as client
// @Tags         reservas
// @Produce      json
// @Param        tab  query     string  false  "waiting | active | done"
// @Success      200  {array}   response.ReservationResponse
// @Failure      400  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/cliente [get]
func (h *ReservationHandler) ListForClient(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}
	details, err := h.usecase.ListForClient(c.Request.Context(), callerID, c.Query("tab"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservationDetails(details))
}

// ListForProfessional godoc
// @Summary      List the caller's reservations as professional
// @Tags         reservas
// @Produce      json
// @Param        tab  query     string  false  "pending | active | done"
// @Success      200  {array}   response.ReservationResponse
// @Failure      400  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/profesional [get]
func (h *ReservationHandler) ListForProfessional(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}
	details, err := h.usecase.ListForProfessional(c.Request.Context(), callerID, c.Query("tab"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservationDetails(details))
}

// Accept godoc
// @Summary      Professional accepts the requested or proposed time
// @Tags         reservas
// @Produce      json
// @Param        id   path      int  true  "Reservation id"
// @Success      200  {object}  response.ReservationResponse
// @Failure      401  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/aceptar [patch]
func (h *ReservationHandler) Accept(c *gin.Context) {
	h.transition(c, lifecycle.ActionAccept, nil)
}

// Propose godoc
// @Summary      Professional proposes another time
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Reservation id"
// @Param        body  body      request.ProposeRequest   true  "Proposal"
// @Success      200   {object}  response.ReservationResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/proponer [patch]
func (h *ReservationHandler) Propose(c *gin.Context) {
	var payload request.ProposeRequest
	h.transition(c, lifecycle.ActionPropose, bodyApplier(&payload, func(cmd *lifecycle.Command) { payload.Apply(cmd) }))
}

// Cancel godoc
// @Summary      Professional cancels an open reservation
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true   "Reservation id"
// @Param        body  body      request.CancelRequest  false  "Reason"
// @Success      200   {object}  response.ReservationResponse
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/cancelar [patch]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	var payload request.CancelRequest
	h.transition(c, lifecycle.ActionCancel, bodyApplier(&payload, func(cmd *lifecycle.Command) { payload.Apply(cmd) }))
}

// Finish godoc
// @Summary      Professional reports the work as done
// @Tags         reservas
// @Produce      json
// @Param        id   path      int  true  "Reservation id"
// @Success      200  {object}  response.ReservationResponse
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/finalizar [patch]
func (h *ReservationHandler) Finish(c *gin.Context) {
	h.transition(c, lifecycle.ActionFinish, nil)
}

// AcceptProposal godoc
// @Summary      Client accepts the proposed time
// @Tags         reservas
// @Produce      json
// @Param        id   path      int  true  "Reservation id"
// @Success      200  {object}  response.ReservationResponse
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/aceptar-propuesta [patch]
func (h *ReservationHandler) AcceptProposal(c *gin.Context) {
	h.transition(c, lifecycle.ActionAcceptProposal, nil)
}

// RejectProposal godoc
// @Summary      Client rejects the proposed time
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true   "Reservation id"
// @Param        body  body      request.RejectRequest  false  "Message"
// @Success      200   {object}  response.ReservationResponse
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/rechazar-propuesta [patch]
func (h *ReservationHandler) RejectProposal(c *gin.Context) {
	var payload request.RejectRequest
	h.transition(c, lifecycle.ActionRejectProposal, bodyApplier(&payload, func(cmd *lifecycle.Command) { payload.Apply(cmd) }))
}

// RequesterFinish godoc
// @Summary      Client reports the work as done
// @Tags         reservas
// @Produce      json
// @Param        id   path      int  true  "Reservation id"
// @Success      200  {object}  response.ReservationResponse
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/solicitar-finalizacion [patch]
func (h *ReservationHandler) RequesterFinish(c *gin.Context) {
	h.transition(c, lifecycle.ActionRequesterFinish, nil)
}

// ConfirmFinish godoc
// @Summary      The party whose turn it is confirms the finish
// @Tags         reservas
// @Produce      json
// @Param        id   path      int  true  "Reservation id"
// @Success      200  {object}  response.ReservationResponse
// @Failure      401  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/confirmar-finalizacion [patch]
func (h *ReservationHandler) ConfirmFinish(c *gin.Context) {
	h.transition(c, lifecycle.ActionConfirmFinish, nil)
}

// RejectFinish godoc
// @Summary      The party whose turn it is sends the work back
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true   "Reservation id"
// @Param        body  body      request.RejectRequest  false  "Message"
// @Success      200   {object}  response.ReservationResponse
// @Failure      401   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/rechazar-finalizacion [patch]
func (h *ReservationHandler) RejectFinish(c *gin.Context) {
	var payload request.RejectRequest
	h.transition(c, lifecycle.ActionRejectFinish, bodyApplier(&payload, func(cmd *lifecycle.Command) { payload.Apply(cmd) }))
}

// Rate godoc
// @Summary      Rate the counterpart of a closed reservation
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Reservation id"
// @Param        body  body      request.RateRequest  true  "Rating"
// @Success      200   {object}  response.ReservationResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reservas/{id}/calificar [post]
func (h *ReservationHandler) Rate(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var payload request.RateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	detail, err := h.usecase.Rate(c.Request.Context(), id, callerID, *payload.Score, payload.Comment)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservationDetail(detail))
}

// bodyApplier binds an optional JSON body into payload and returns the step that copies it into the command.
func bodyApplier(payload interface{}, apply func(*lifecycle.Command)) func(*gin.Context, *lifecycle.Command) error {
	return func(c *gin.Context, cmd *lifecycle.Command) error {
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(payload); err != nil {
				return err
			}
		}
		apply(cmd)
		return nil
	}
}

func (h *ReservationHandler) transition(c *gin.Context, action lifecycle.Action, bind func(*gin.Context, *lifecycle.Command) error) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := reservationID(c)
	if !ok {
		return
	}

	cmd := lifecycle.Command{Action: action, CallerID: callerID}
	if bind != nil {
		if err := bind(c, &cmd); err != nil {
			c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
			return
		}
	}

	detail, err := h.usecase.Transition(c.Request.Context(), id, cmd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservationDetail(detail))
}

func (h *ReservationHandler) caller(c *gin.Context) (int64, bool) {
	id, err := middleware.CallerID(c)
	if err != nil {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return 0, false
	}
	return id, true
}

func reservationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(errInvalidReservation.HTTPStatus, errInvalidReservation.ToHTTPError())
		return 0, false
	}
	return id, true
}

func (h *ReservationHandler) writeError(c *gin.Context, err error) {
	appErr := mapReservationError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.ErrorContext(c.Request.Context(), "reservation request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("err", err),
		)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapReservationError(err error) *pkg.AppError {
	var (
		transitionErr *lifecycle.TransitionError
		validationErr *lifecycle.ValidationError
	)
	switch {
	case errors.As(err, &transitionErr):
		allowed := make([]string, 0, len(transitionErr.AllowedFrom))
		for _, s := range transitionErr.AllowedFrom {
			allowed = append(allowed, string(s))
		}
		return pkg.NewDomainError("INVALID_TRANSITION", "Action not allowed in the current status", err, http.StatusConflict).
			WithDetails(map[string]interface{}{
				"action":        string(transitionErr.Action),
				"currentStatus": string(transitionErr.Current),
				"allowedFrom":   allowed,
			})
	case errors.As(err, &validationErr):
		return pkg.NewDomainError("VALIDATION_ERROR", validationErr.Error(), err, http.StatusBadRequest).
			WithDetails(map[string]interface{}{"field": validationErr.Field})
	case errors.Is(err, usecase.ErrInvalidTab):
		return pkg.NewDomainError("VALIDATION_ERROR", "Unknown tab", err, http.StatusBadRequest).
			WithDetails(map[string]interface{}{"field": "tab"})
	case errors.Is(err, usecase.ErrInvalidReservationID):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid reservation id", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrReservationNotFound):
		return pkg.NewDomainError("RESERVATION_NOT_FOUND", "Reservation not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainError("SERVICE_NOT_FOUND", "Service not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceInactive):
		return pkg.NewDomainError("SERVICE_INACTIVE", "Service is not active", err, http.StatusConflict)
	case errors.Is(err, lifecycle.ErrNotAParty):
		return pkg.NewDomainError("NOT_A_PARTY", "Caller is not a party to this reservation", err, http.StatusUnauthorized)
	case errors.Is(err, lifecycle.ErrRoleNotAllowed):
		return pkg.NewDomainError("ROLE_NOT_ALLOWED", "Caller's role cannot perform this action", err, http.StatusUnauthorized)
	case errors.Is(err, lifecycle.ErrNotYourTurn):
		return pkg.NewDomainError("NOT_YOUR_TURN", "The other party is expected to act", err, http.StatusUnauthorized)
	case errors.Is(err, lifecycle.ErrUnauthorized):
		return pkg.NewDomainError("UNAUTHORIZED", "Caller is not allowed to act on this reservation", err, http.StatusUnauthorized)
	case errors.Is(err, lifecycle.ErrAlreadyRated):
		return pkg.NewDomainError("ALREADY_RATED", "Rating already submitted", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
