package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"servicios_locales/internal/domain/entities"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotAParty         = fmt.Errorf("%w: caller is not a party to the reservation", ErrUnauthorized)
	ErrRoleNotAllowed    = fmt.Errorf("%w: caller's role cannot perform this action", ErrUnauthorized)
	ErrNotYourTurn       = fmt.Errorf("%w: the other party is expected to act", ErrUnauthorized)
	ErrInvalidTransition = errors.New("invalid transition")
	ErrValidation        = errors.New("validation error")
	ErrAlreadyRated      = errors.New("rating already submitted")
)

// TransitionError reports an action attempted from a status that does not allow it.
type TransitionError struct {
	Action      Action
	Current     entities.ReservationStatus
	AllowedFrom []entities.ReservationStatus
}

func (e *TransitionError) Error() string {
	from := make([]string, 0, len(e.AllowedFrom))
	for _, s := range e.AllowedFrom {
		from = append(from, string(s))
	}
	return fmt.Sprintf("invalid transition: %s not allowed from %s (allowed from %s)",
		e.Action, e.Current, strings.Join(from, ","))
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// ValidationError reports malformed input for an action.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
