package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"servicios_locales/internal/domain/entities"
	"servicios_locales/internal/domain/lifecycle"
	"servicios_locales/internal/usecase/interfaces"
)

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInvalidReservationID = errors.New("invalid reservation id")
	ErrServiceNotFound      = errors.New("service not found")
	ErrServiceInactive      = errors.New("service is not active")
	ErrInvalidTab           = errors.New("invalid tab")
)

// Tabs of the reservation lists. Waiting and pending name the same bucket.
const (
	TabWaiting = "waiting"
	TabPending = "pending"
	TabActive  = "active"
	TabDone    = "done"
)

// transitionAttempts bounds how often a transition is re-decided after losing a write race.
const transitionAttempts = 2

// CreateReservationInput is what a client submits to book a service.
type CreateReservationInput struct {
	ServiceID         int64
	ClientDescription *string
	RequestedAt       *time.Time
}

//go:generate mockgen -source=reservation_usecase.go -destination=../adapter/http/handlers/mocks/reservation_usecase_mock.go -package=mocks

// IReservationUseCase exposes the reservation lifecycle.
//
// Every operation returns the reservation joined with its service and both parties,
// read back from storage after any write and shaped for the caller:
//   - create => Create()
//   - getById => GetByID()
//   - listForClient / listForProfessional => ListForClient() / ListForProfessional()
//   - accept, propose, cancel, finish, acceptProposal, rejectProposal,
//     requesterFinish, confirmFinish, rejectFinish => Transition()
//   - rate => Rate()
type IReservationUseCase interface {
	Create(ctx context.Context, callerID int64, in CreateReservationInput) (entities.ReservationDetail, error)
	GetByID(ctx context.Context, id, callerID int64) (entities.ReservationDetail, error)
	ListForClient(ctx context.Context, callerID int64, tab string) ([]entities.ReservationDetail, error)
	ListForProfessional(ctx context.Context, callerID int64, tab string) ([]entities.ReservationDetail, error)
	Transition(ctx context.Context, id int64, cmd lifecycle.Command) (entities.ReservationDetail, error)
	Rate(ctx context.Context, id, callerID int64, score int, comment *string) (entities.ReservationDetail, error)
}

type ReservationUseCase struct {
	repo     interfaces.IReservationRepository
	services interfaces.IServiceListingLookup
	users    interfaces.IUserDirectory
	log      *slog.Logger

	Now func() time.Time
}

var _ IReservationUseCase = (*ReservationUseCase)(nil)

func NewReservationUseCase(
	repo interfaces.IReservationRepository,
	services interfaces.IServiceListingLookup,
	users interfaces.IUserDirectory,
	logger *slog.Logger,
) *ReservationUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationUseCase{
		repo:     repo,
		services: services,
		users:    users,
		log:      logger.With(slog.String("component", "reservation_usecase")),
		Now:      time.Now,
	}
}

func (u *ReservationUseCase) now() time.Time {
	if u.Now != nil {
		return u.Now().UTC()
	}
	return time.Now().UTC()
}

// StatusesForTab maps a list tab to its status bucket. An empty tab selects the first bucket.
func StatusesForTab(tab string) ([]entities.ReservationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(tab)) {
	case "", TabWaiting, TabPending:
		return []entities.ReservationStatus{entities.ReservationStatusPendiente, entities.ReservationStatusEnNegociacion}, nil
	case TabActive:
		return []entities.ReservationStatus{entities.ReservationStatusEnProceso}, nil
	case TabDone:
		return []entities.ReservationStatus{entities.ReservationStatusFinalizado, entities.ReservationStatusCerrado}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTab, tab)
}

func (u *ReservationUseCase) Create(ctx context.Context, callerID int64, in CreateReservationInput) (entities.ReservationDetail, error) {
	if callerID <= 0 {
		return entities.ReservationDetail{}, lifecycle.ErrUnauthorized
	}
	if in.ServiceID <= 0 {
		return entities.ReservationDetail{}, &lifecycle.ValidationError{Field: "servicioId", Reason: "is required"}
	}
	description, err := lifecycle.NormalizeText("descripcionCliente", in.ClientDescription)
	if err != nil {
		return entities.ReservationDetail{}, err
	}

	svc, err := u.services.GetByID(ctx, in.ServiceID)
	if err != nil {
		return entities.ReservationDetail{}, err
	}
	if svc.ID == 0 {
		return entities.ReservationDetail{}, ErrServiceNotFound
	}
	if !svc.Active {
		return entities.ReservationDetail{}, ErrServiceInactive
	}
	if svc.ProfessionalID == callerID {
		return entities.ReservationDetail{}, &lifecycle.ValidationError{Field: "servicioId", Reason: "belongs to the caller"}
	}

	now := u.now()
	r := entities.Reservation{
		ServiceID:         svc.ID,
		ClientID:          callerID,
		ProfessionalID:    svc.ProfessionalID,
		Status:            entities.ReservationStatusPendiente,
		ActionRequired:    entities.RoleProfesional,
		ClientDescription: description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.RequestedAt != nil && !in.RequestedAt.IsZero() {
		at := in.RequestedAt.UTC()
		r.RequestedAt = &at
	}

	created, err := u.repo.Create(ctx, r)
	if err != nil {
		return entities.ReservationDetail{}, err
	}
	u.log.InfoContext(ctx, "reservation created",
		slog.Int64("reservation_id", created.ID),
		slog.Int64("service_id", created.ServiceID),
		slog.Int64("caller_id", callerID),
	)
	return u.GetByID(ctx, created.ID, callerID)
}

func (u *ReservationUseCase) GetByID(ctx context.Context, id, callerID int64) (entities.ReservationDetail, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ReservationDetail{}, err
	}
	if r.RoleOf(callerID) == entities.RoleNone {
		return entities.ReservationDetail{}, lifecycle.ErrNotAParty
	}
	details, err := u.compose(ctx, []entities.Reservation{r}, callerID)
	if err != nil {
		return entities.ReservationDetail{}, err
	}
	return details[0], nil
}

func (u *ReservationUseCase) ListForClient(ctx context.Context, callerID int64, tab string) ([]entities.ReservationDetail, error) {
	statuses, err := StatusesForTab(tab)
	if err != nil {
		return nil, err
	}
	rs, err := u.repo.ListByClient(ctx, callerID, statuses)
	if err != nil {
		return nil, err
	}
	return u.compose(ctx, rs, callerID)
}

func (u *ReservationUseCase) ListForProfessional(ctx context.Context, callerID int64, tab string) ([]entities.ReservationDetail, error) {
	statuses, err := StatusesForTab(tab)
	if err != nil {
		return nil, err
	}
	rs, err := u.repo.ListByProfessional(ctx, callerID, statuses)
	if err != nil {
		return nil, err
	}
	return u.compose(ctx, rs, callerID)
}

// Transition runs one lifecycle action. A write that loses against a concurrent
// writer is re-decided on the fresh row, which usually reports the new status.
func (u *ReservationUseCase) Transition(ctx context.Context, id int64, cmd lifecycle.Command) (entities.ReservationDetail, error) {
	logger := u.log.With(
		slog.Int64("reservation_id", id),
		slog.String("action", string(cmd.Action)),
		slog.Int64("caller_id", cmd.CallerID),
	)

	var current entities.Reservation
	for attempt := 0; attempt < transitionAttempts; attempt++ {
		r, err := u.load(ctx, id)
		if err != nil {
			return entities.ReservationDetail{}, err
		}
		current = r

		upd, err := lifecycle.Decide(r, cmd)
		if err != nil {
			logger.InfoContext(ctx, "transition rejected", slog.String("status", string(r.Status)), slog.Any("err", err))
			return entities.ReservationDetail{}, err
		}

		err = u.repo.ApplyTransition(ctx, id, r.Status, upd, u.now())
		if errors.Is(err, interfaces.ErrStaleWrite) {
			logger.WarnContext(ctx, "transition lost a concurrent write", slog.String("expected_status", string(r.Status)))
			continue
		}
		if err != nil {
			return entities.ReservationDetail{}, err
		}

		logger.InfoContext(ctx, "reservation transitioned",
			slog.String("from", string(r.Status)),
			slog.String("to", string(upd.Status)),
		)
		return u.GetByID(ctx, id, cmd.CallerID)
	}

	if fresh, err := u.load(ctx, id); err == nil {
		current = fresh
	}
	return entities.ReservationDetail{}, &lifecycle.TransitionError{
		Action:      cmd.Action,
		Current:     current.Status,
		AllowedFrom: lifecycle.AllowedFrom(cmd.Action),
	}
}

func (u *ReservationUseCase) Rate(ctx context.Context, id, callerID int64, score int, comment *string) (entities.ReservationDetail, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ReservationDetail{}, err
	}

	role, slot, err := lifecycle.DecideRating(r, callerID, score, comment)
	if err != nil {
		return entities.ReservationDetail{}, err
	}

	err = u.repo.SaveRating(ctx, id, role, slot, u.now())
	if errors.Is(err, interfaces.ErrStaleWrite) {
		fresh, loadErr := u.load(ctx, id)
		if loadErr != nil {
			return entities.ReservationDetail{}, loadErr
		}
		if _, _, decideErr := lifecycle.DecideRating(fresh, callerID, score, comment); decideErr != nil {
			return entities.ReservationDetail{}, decideErr
		}
		return entities.ReservationDetail{}, err
	}
	if err != nil {
		return entities.ReservationDetail{}, err
	}

	u.log.InfoContext(ctx, "reservation rated",
		slog.Int64("reservation_id", id),
		slog.Int64("caller_id", callerID),
		slog.String("role", string(role)),
		slog.Int("score", score),
	)
	return u.GetByID(ctx, id, callerID)
}

func (u *ReservationUseCase) load(ctx context.Context, id int64) (entities.Reservation, error) {
	if id <= 0 {
		return entities.Reservation{}, ErrInvalidReservationID
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Reservation{}, err
	}
	if r.ID == 0 {
		return entities.Reservation{}, ErrReservationNotFound
	}
	return r, nil
}

// compose joins services and user identities into rs and hides ratings the viewer may not see yet.
func (u *ReservationUseCase) compose(ctx context.Context, rs []entities.Reservation, viewerID int64) ([]entities.ReservationDetail, error) {
	out := make([]entities.ReservationDetail, 0, len(rs))
	if len(rs) == 0 {
		return out, nil
	}

	serviceIDs := make([]int64, 0, len(rs))
	userIDs := make([]int64, 0, 2*len(rs))
	seenService := make(map[int64]bool, len(rs))
	seenUser := make(map[int64]bool, 2*len(rs))
	for _, r := range rs {
		if !seenService[r.ServiceID] {
			seenService[r.ServiceID] = true
			serviceIDs = append(serviceIDs, r.ServiceID)
		}
		for _, uid := range []int64{r.ClientID, r.ProfessionalID} {
			if !seenUser[uid] {
				seenUser[uid] = true
				userIDs = append(userIDs, uid)
			}
		}
	}

	services, err := u.services.GetByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	users, err := u.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	for _, r := range rs {
		viewer := r.RoleOf(viewerID)
		r.ClientRating, r.ProfessionalRating = lifecycle.VisibleRatings(r, viewer)

		d := entities.ReservationDetail{
			Reservation:  r,
			Service:      services[r.ServiceID],
			Client:       users[r.ClientID],
			Professional: users[r.ProfessionalID],
			Viewer:       viewer,
		}
		d.Service.ID = r.ServiceID
		d.Client.ID = r.ClientID
		d.Professional.ID = r.ProfessionalID
		out = append(out, d)
	}
	return out, nil
}
