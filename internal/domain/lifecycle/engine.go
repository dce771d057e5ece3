// Package lifecycle decides reservation status transitions and rating submissions.
// It performs no I/O: callers load the reservation, ask for a decision and persist it.
package lifecycle

import (
	"strings"
	"time"

	"servicios_locales/internal/domain/entities"
)

// Action is a named transition of the reservation state machine.
type Action string

const (
	ActionAccept          Action = "accept"
	ActionPropose         Action = "propose"
	ActionCancel          Action = "cancel"
	ActionFinish          Action = "finish"
	ActionAcceptProposal  Action = "acceptProposal"
	ActionRejectProposal  Action = "rejectProposal"
	ActionRequesterFinish Action = "requesterFinish"
	ActionConfirmFinish   Action = "confirmFinish"
	ActionRejectFinish    Action = "rejectFinish"
	ActionRate            Action = "rate"
)

// Actions lists every status-changing action.
var Actions = []Action{
	ActionAccept,
	ActionPropose,
	ActionCancel,
	ActionFinish,
	ActionAcceptProposal,
	ActionRejectProposal,
	ActionRequesterFinish,
	ActionConfirmFinish,
	ActionRejectFinish,
}

const maxMessageLength = 1000

type actor int

const (
	actorProfessional actor = iota + 1
	actorClient
	// actorTurnHolder admits either party, but only the one named by ActionRequired.
	actorTurnHolder
)

type rule struct {
	actor actor
	from  []entities.ReservationStatus
	to    entities.ReservationStatus
	turn  entities.Role
}

var (
	fromOpen       = []entities.ReservationStatus{entities.ReservationStatusPendiente, entities.ReservationStatusEnNegociacion}
	fromNegotiated = []entities.ReservationStatus{entities.ReservationStatusEnNegociacion}
	fromWorking    = []entities.ReservationStatus{entities.ReservationStatusEnProceso}
	fromFinished   = []entities.ReservationStatus{entities.ReservationStatusFinalizado}
	fromClosed     = []entities.ReservationStatus{entities.ReservationStatusCerrado}
)

func ruleFor(a Action) (rule, bool) {
	switch a {
	case ActionAccept:
		return rule{actorProfessional, fromOpen, entities.ReservationStatusEnProceso, entities.RoleNone}, true
	case ActionPropose:
		return rule{actorProfessional, fromOpen, entities.ReservationStatusEnNegociacion, entities.RoleCliente}, true
	case ActionCancel:
		return rule{actorProfessional, fromOpen, entities.ReservationStatusCancelado, entities.RoleNone}, true
	case ActionFinish:
		return rule{actorProfessional, fromWorking, entities.ReservationStatusFinalizado, entities.RoleCliente}, true
	case ActionAcceptProposal:
		return rule{actorClient, fromNegotiated, entities.ReservationStatusEnProceso, entities.RoleNone}, true
	case ActionRejectProposal:
		return rule{actorClient, fromNegotiated, entities.ReservationStatusPendiente, entities.RoleProfesional}, true
	case ActionRequesterFinish:
		return rule{actorClient, fromWorking, entities.ReservationStatusFinalizado, entities.RoleProfesional}, true
	case ActionConfirmFinish:
		return rule{actorTurnHolder, fromFinished, entities.ReservationStatusCerrado, entities.RoleNone}, true
	case ActionRejectFinish:
		return rule{actorTurnHolder, fromFinished, entities.ReservationStatusEnProceso, entities.RoleNone}, true
	}
	return rule{}, false
}

// AllowedFrom returns the statuses from which action may be taken.
func AllowedFrom(a Action) []entities.ReservationStatus {
	if a == ActionRate {
		return fromClosed
	}
	r, ok := ruleFor(a)
	if !ok {
		return nil
	}
	return r.from
}

// Command is one caller's request to move a reservation.
type Command struct {
	Action   Action
	CallerID int64

	// ProposedAt is required by propose.
	ProposedAt *time.Time
	// Message is the proposal note (propose) or the rejection note (rejectProposal, rejectFinish).
	Message *string
	// Reason is the cancellation reason.
	Reason *string
}

// Decide validates cmd against r and returns the update to persist.
//
// Checks run in a fixed order so callers can tell failures apart: party, role,
// input, current status, and finally whose turn it is.
func Decide(r entities.Reservation, cmd Command) (entities.ReservationUpdate, error) {
	rl, ok := ruleFor(cmd.Action)
	if !ok {
		return entities.ReservationUpdate{}, &ValidationError{Field: "action", Reason: "is unknown"}
	}

	role := r.RoleOf(cmd.CallerID)
	if role == entities.RoleNone {
		return entities.ReservationUpdate{}, ErrNotAParty
	}
	switch rl.actor {
	case actorProfessional:
		if role != entities.RoleProfesional {
			return entities.ReservationUpdate{}, ErrRoleNotAllowed
		}
	case actorClient:
		if role != entities.RoleCliente {
			return entities.ReservationUpdate{}, ErrRoleNotAllowed
		}
	}

	message, err := NormalizeText("mensaje", cmd.Message)
	if err != nil {
		return entities.ReservationUpdate{}, err
	}
	reason, err := NormalizeText("motivo", cmd.Reason)
	if err != nil {
		return entities.ReservationUpdate{}, err
	}
	if cmd.Action == ActionPropose && (cmd.ProposedAt == nil || cmd.ProposedAt.IsZero()) {
		return entities.ReservationUpdate{}, &ValidationError{Field: "fechaHoraPropuesta", Reason: "is required"}
	}

	if !contains(rl.from, r.Status) {
		return entities.ReservationUpdate{}, &TransitionError{Action: cmd.Action, Current: r.Status, AllowedFrom: rl.from}
	}
	if rl.actor == actorTurnHolder && role != r.ActionRequired {
		return entities.ReservationUpdate{}, ErrNotYourTurn
	}

	upd := entities.ReservationUpdate{Status: rl.to, ActionRequired: rl.turn}
	switch cmd.Action {
	case ActionPropose:
		at := cmd.ProposedAt.UTC()
		upd.ProposedAt = &at
		upd.ProposalMessage = message
	case ActionCancel:
		upd.CanceledBy = role
		upd.CancelReason = reason
	case ActionRejectProposal, ActionRejectFinish:
		// Both rejections reuse the proposal message field as their note.
		upd.ProposalMessage = message
	}
	return upd, nil
}

// TurnConsistent reports whether status and turn marker agree.
func TurnConsistent(status entities.ReservationStatus, turn entities.Role) bool {
	if status.ExpectsTurn() {
		return turn != entities.RoleNone
	}
	return turn == entities.RoleNone
}

// NormalizeText trims v and maps blank input to nil. Values over 1000 runes are rejected.
func NormalizeText(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil, nil
	}
	if len([]rune(s)) > maxMessageLength {
		return nil, &ValidationError{Field: field, Reason: "is too long"}
	}
	return &s, nil
}

func contains(list []entities.ReservationStatus, s entities.ReservationStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
