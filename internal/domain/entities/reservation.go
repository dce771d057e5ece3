package entities

import "time"

// ReservationStatus is the lifecycle position of a reservation (reserva).
//
// Domain notes:
//   - PENDIENTE is the only initial status.
//   - CERRADO and CANCELADO are terminal and kept forever as history.
//   - Transitions are decided exclusively by the lifecycle package.
type ReservationStatus string

const (
	ReservationStatusPendiente     ReservationStatus = "PENDIENTE"
	ReservationStatusEnNegociacion ReservationStatus = "EN_NEGOCIACION"
	ReservationStatusEnProceso     ReservationStatus = "EN_PROCESO"
	ReservationStatusFinalizado    ReservationStatus = "FINALIZADO"
	ReservationStatusCerrado       ReservationStatus = "CERRADO"
	ReservationStatusCancelado     ReservationStatus = "CANCELADO"
)

// AllReservationStatuses lists every status in lifecycle order.
var AllReservationStatuses = []ReservationStatus{
	ReservationStatusPendiente,
	ReservationStatusEnNegociacion,
	ReservationStatusEnProceso,
	ReservationStatusFinalizado,
	ReservationStatusCerrado,
	ReservationStatusCancelado,
}

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPendiente, ReservationStatusEnNegociacion, ReservationStatusEnProceso,
		ReservationStatusFinalizado, ReservationStatusCerrado, ReservationStatusCancelado:
		return true
	}
	return false
}

func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCerrado || s == ReservationStatusCancelado
}

// ExpectsTurn reports whether a reservation in this status must name the party that acts next.
func (s ReservationStatus) ExpectsTurn() bool {
	switch s {
	case ReservationStatusPendiente, ReservationStatusEnNegociacion, ReservationStatusFinalizado:
		return true
	}
	return false
}

// Role is the position of a user relative to one reservation.
type Role string

const (
	RoleNone        Role = ""
	RoleCliente     Role = "CLIENTE"
	RoleProfesional Role = "PROFESIONAL"
)

func (r Role) Other() Role {
	switch r {
	case RoleCliente:
		return RoleProfesional
	case RoleProfesional:
		return RoleCliente
	}
	return RoleNone
}

// RatingSlot is one party's rating. Submitted, not Score, tells whether the slot was written.
type RatingSlot struct {
	Submitted bool
	Score     *int
	Comment   *string
}

// Reservation is the aggregate root persisted by the reservation store.
//
// Storage model (DynamoDB):
//   - PK: id (number, from the reservations counter)
//   - GSI cliente_id-index: cliente_id + creado_en
//   - GSI profesional_id-index: profesional_id + creado_en
//
// Display fields of the counterpart and of the service are never stored here;
// they are joined at read time (see ReservationDetail).
type Reservation struct {
	ID             int64
	ServiceID      int64
	ClientID       int64
	ProfessionalID int64

	Status         ReservationStatus
	ActionRequired Role

	ClientDescription *string
	RequestedAt       *time.Time
	ProposedAt        *time.Time
	ProposalMessage   *string

	CanceledBy   Role
	CancelReason *string

	ClientRating       RatingSlot
	ProfessionalRating RatingSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleOf resolves the caller's role on this reservation.
func (r Reservation) RoleOf(callerID int64) Role {
	switch {
	case callerID != 0 && callerID == r.ClientID:
		return RoleCliente
	case callerID != 0 && callerID == r.ProfessionalID:
		return RoleProfesional
	}
	return RoleNone
}

// CanSeeRatings is true only when both parties have submitted their rating.
func (r Reservation) CanSeeRatings() bool {
	return r.ClientRating.Submitted && r.ProfessionalRating.Submitted
}

// RatingOf returns the slot owned by role.
func (r Reservation) RatingOf(role Role) RatingSlot {
	if role == RoleProfesional {
		return r.ProfessionalRating
	}
	return r.ClientRating
}

// ReservationUpdate is the patch produced by a transition. Nil pointers leave the stored value untouched.
type ReservationUpdate struct {
	Status          ReservationStatus
	ActionRequired  Role
	ProposedAt      *time.Time
	ProposalMessage *string
	CanceledBy      Role
	CancelReason    *string
}

// Apply returns a copy of r with the update applied and UpdatedAt stamped.
func (u ReservationUpdate) Apply(r Reservation, now time.Time) Reservation {
	r.Status = u.Status
	r.ActionRequired = u.ActionRequired
	if u.ProposedAt != nil {
		r.ProposedAt = u.ProposedAt
	}
	if u.ProposalMessage != nil {
		r.ProposalMessage = u.ProposalMessage
	}
	if u.CanceledBy != RoleNone {
		r.CanceledBy = u.CanceledBy
	}
	if u.CancelReason != nil {
		r.CancelReason = u.CancelReason
	}
	r.UpdatedAt = now
	return r
}
