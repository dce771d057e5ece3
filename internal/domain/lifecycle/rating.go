package lifecycle

import (
	"servicios_locales/internal/domain/entities"
)

const (
	MinScore = 1
	MaxScore = 5
)

// DecideRating validates a rating submission and returns the role whose slot must be written.
func DecideRating(r entities.Reservation, callerID int64, score int, comment *string) (entities.Role, entities.RatingSlot, error) {
	role := r.RoleOf(callerID)
	if role == entities.RoleNone {
		return entities.RoleNone, entities.RatingSlot{}, ErrNotAParty
	}
	if score < MinScore || score > MaxScore {
		return entities.RoleNone, entities.RatingSlot{}, &ValidationError{Field: "puntaje", Reason: "must be between 1 and 5"}
	}
	text, err := NormalizeText("comentario", comment)
	if err != nil {
		return entities.RoleNone, entities.RatingSlot{}, err
	}
	if r.Status != entities.ReservationStatusCerrado {
		return entities.RoleNone, entities.RatingSlot{}, &TransitionError{Action: ActionRate, Current: r.Status, AllowedFrom: fromClosed}
	}
	if r.RatingOf(role).Submitted {
		return entities.RoleNone, entities.RatingSlot{}, ErrAlreadyRated
	}

	s := score
	return role, entities.RatingSlot{Submitted: true, Score: &s, Comment: text}, nil
}

// VisibleRatings returns the two slots as viewer may see them.
//
// Until both parties have rated, the counterpart's score and comment are withheld;
// its Submitted flag stays visible.
func VisibleRatings(r entities.Reservation, viewer entities.Role) (client, professional entities.RatingSlot) {
	client, professional = r.ClientRating, r.ProfessionalRating
	if r.CanSeeRatings() {
		return client, professional
	}
	switch viewer {
	case entities.RoleCliente:
		professional = entities.RatingSlot{Submitted: professional.Submitted}
	case entities.RoleProfesional:
		client = entities.RatingSlot{Submitted: client.Submitted}
	default:
		client = entities.RatingSlot{Submitted: client.Submitted}
		professional = entities.RatingSlot{Submitted: professional.Submitted}
	}
	return client, professional
}
