package interfaces

import (
	"context"
	"errors"
	"time"

	"servicios_locales/internal/domain/entities"
)

// ErrStaleWrite is returned when a conditional write lost against a concurrent writer.
var ErrStaleWrite = errors.New("reservation changed concurrently")

//go:generate mockgen -source=reservation_repository_interface.go -destination=mocks/reservation_repository_mock.go -package=mock_interfaces

// IReservationRepository abstracts persistence of the Reservation aggregate.
//
// Implementations must:
//   - assign a new sequential id on Create
//   - return a zero-value Reservation (ID == 0) when GetByID finds nothing
//   - list newest-created first
//   - apply a transition only while the stored status still equals expected,
//     otherwise return ErrStaleWrite
//   - write a rating slot only while the status is CERRADO and the slot is unwritten,
//     otherwise return ErrStaleWrite
type IReservationRepository interface {
	Create(ctx context.Context, r entities.Reservation) (entities.Reservation, error)
	GetByID(ctx context.Context, id int64) (entities.Reservation, error)
	ListByClient(ctx context.Context, clientID int64, statuses []entities.ReservationStatus) ([]entities.Reservation, error)
	ListByProfessional(ctx context.Context, professionalID int64, statuses []entities.ReservationStatus) ([]entities.Reservation, error)
	ApplyTransition(ctx context.Context, id int64, expected entities.ReservationStatus, upd entities.ReservationUpdate, now time.Time) error
	SaveRating(ctx context.Context, id int64, role entities.Role, slot entities.RatingSlot, now time.Time) error
}
