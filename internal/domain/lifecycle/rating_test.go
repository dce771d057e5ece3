package lifecycle

import (
	"errors"
	"testing"

	"servicios_locales/internal/domain/entities"
)

func closedReservation() entities.Reservation {
	return newReservation(entities.ReservationStatusCerrado, entities.RoleNone)
}

func TestDecideRating(t *testing.T) {
	t.Run("client writes client slot", func(t *testing.T) {
		role, slot, err := DecideRating(closedReservation(), clientID, 5, strPtr(" excelente "))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if role != entities.RoleCliente || !slot.Submitted || *slot.Score != 5 || *slot.Comment != "excelente" {
			t.Fatalf("unexpected decision: %s %+v", role, slot)
		}
	})

	t.Run("professional writes professional slot", func(t *testing.T) {
		role, slot, err := DecideRating(closedReservation(), professionalID, 4, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if role != entities.RoleProfesional || slot.Comment != nil {
			t.Fatalf("unexpected decision: %s %+v", role, slot)
		}
	})

	t.Run("stranger", func(t *testing.T) {
		_, _, err := DecideRating(closedReservation(), strangerID, 5, nil)
		if !errors.Is(err, ErrNotAParty) {
			t.Fatalf("expected ErrNotAParty, got %v", err)
		}
	})

	t.Run("score out of range", func(t *testing.T) {
		for _, score := range []int{0, 6, -1} {
			_, _, err := DecideRating(closedReservation(), clientID, score, nil)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("score %d: expected ErrValidation, got %v", score, err)
			}
		}
	})

	t.Run("not closed", func(t *testing.T) {
		for _, status := range entities.AllReservationStatuses {
			if status == entities.ReservationStatusCerrado {
				continue
			}
			_, _, err := DecideRating(newReservation(status, turnFor(status)), clientID, 5, nil)
			var te *TransitionError
			if !errors.As(err, &te) || te.Action != ActionRate || te.Current != status {
				t.Fatalf("%s: expected rate TransitionError, got %v", status, err)
			}
		}
	})

	t.Run("already rated", func(t *testing.T) {
		r := closedReservation()
		five := 5
		r.ClientRating = entities.RatingSlot{Submitted: true, Score: &five}
		_, _, err := DecideRating(r, clientID, 1, nil)
		if !errors.Is(err, ErrAlreadyRated) {
			t.Fatalf("expected ErrAlreadyRated, got %v", err)
		}
		if _, _, err := DecideRating(r, professionalID, 3, nil); err != nil {
			t.Fatalf("professional slot is independent, got %v", err)
		}
	})
}

func TestVisibleRatings(t *testing.T) {
	five, four := 5, 4
	r := closedReservation()
	r.ClientRating = entities.RatingSlot{Submitted: true, Score: &five, Comment: strPtr("muy bien")}

	t.Run("own slot visible before reveal", func(t *testing.T) {
		c, p := VisibleRatings(r, entities.RoleCliente)
		if c.Score == nil || *c.Score != 5 || p.Submitted {
			t.Fatalf("unexpected view: %+v %+v", c, p)
		}
	})

	t.Run("counterpart content withheld before reveal", func(t *testing.T) {
		c, _ := VisibleRatings(r, entities.RoleProfesional)
		if !c.Submitted || c.Score != nil || c.Comment != nil {
			t.Fatalf("expected only submitted flag, got %+v", c)
		}
	})

	t.Run("both visible after reveal", func(t *testing.T) {
		r2 := r
		r2.ProfessionalRating = entities.RatingSlot{Submitted: true, Score: &four}
		if !r2.CanSeeRatings() {
			t.Fatalf("expected canSeeRatings")
		}
		for _, viewer := range []entities.Role{entities.RoleCliente, entities.RoleProfesional} {
			c, p := VisibleRatings(r2, viewer)
			if *c.Score != 5 || *p.Score != 4 {
				t.Fatalf("%s: expected both scores, got %+v %+v", viewer, c, p)
			}
		}
	})

	t.Run("can see ratings truth table", func(t *testing.T) {
		for _, tc := range []struct{ c, p, want bool }{{false, false, false}, {true, false, false}, {false, true, false}, {true, true, true}} {
			x := closedReservation()
			x.ClientRating.Submitted = tc.c
			x.ProfessionalRating.Submitted = tc.p
			if x.CanSeeRatings() != tc.want {
				t.Fatalf("client=%v professional=%v: expected %v", tc.c, tc.p, tc.want)
			}
		}
	})
}
