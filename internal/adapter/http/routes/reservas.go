package routes

import (
	"servicios_locales/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathReservations = "/reservas"
)

func addReservationRoutes(rg *gin.RouterGroup, h *handlers.ReservationHandler) {
	reservas := rg.Group(PathReservations)
	{
		reservas.POST("", h.Create)
		reservas.GET("/cliente", h.ListForClient)
		reservas.GET("/profesional", h.ListForProfessional)
		reservas.GET("/:id", h.GetByID)

		// Professional actions.
		reservas.PATCH("/:id/aceptar", h.Accept)
		reservas.PATCH("/:id/proponer", h.Propose)
		reservas.PATCH("/:id/cancelar", h.Cancel)
		reservas.PATCH("/:id/finalizar", h.Finish)

		// Client actions.
		reservas.PATCH("/:id/aceptar-propuesta", h.AcceptProposal)
		reservas.PATCH("/:id/rechazar-propuesta", h.RejectProposal)
		reservas.PATCH("/:id/solicitar-finalizacion", h.RequesterFinish)

		// Whoever holds the turn.
		reservas.PATCH("/:id/confirmar-finalizacion", h.ConfirmFinish)
		reservas.PATCH("/:id/rechazar-finalizacion", h.RejectFinish)

		reservas.POST("/:id/calificar", h.Rate)
	}
}
