package request

import (
	"time"

	"servicios_locales/internal/domain/lifecycle"
	"servicios_locales/internal/usecase"
)

// CreateReservationRequest is the body of POST /reservas.
type CreateReservationRequest struct {
	ServiceID         int64      `json:"servicioId" binding:"required"`
	ClientDescription *string    `json:"descripcionCliente"`
	RequestedAt       *time.Time `json:"fechaHoraSolicitada"`
}

func (r CreateReservationRequest) ToInput() usecase.CreateReservationInput {
	return usecase.CreateReservationInput{
		ServiceID:         r.ServiceID,
		ClientDescription: r.ClientDescription,
		RequestedAt:       r.RequestedAt,
	}
}

// ProposeRequest is the body of the propose action.
// fechaHoraPropuesta is checked by the lifecycle so a missing value reports the field name.
type ProposeRequest struct {
	ProposedAt *time.Time `json:"fechaHoraPropuesta"`
	Message    *string    `json:"mensajePropuesta"`
}

func (r ProposeRequest) Apply(cmd *lifecycle.Command) {
	cmd.ProposedAt = r.ProposedAt
	cmd.Message = r.Message
}

type CancelRequest struct {
	Reason *string `json:"motivo"`
}

func (r CancelRequest) Apply(cmd *lifecycle.Command) {
	cmd.Reason = r.Reason
}

// RejectRequest is shared by rejectProposal and rejectFinish.
type RejectRequest struct {
	Message *string `json:"mensaje"`
}

func (r RejectRequest) Apply(cmd *lifecycle.Command) {
	cmd.Message = r.Message
}

// RateRequest is the body of POST /reservas/:id/calificar. The 1..5 range is enforced by the rating gate.
type RateRequest struct {
	Score   *int    `json:"puntaje" binding:"required"`
	Comment *string `json:"comentario"`
}
