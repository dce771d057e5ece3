package entities

// ReservationDetail is the read model returned by every reservation endpoint:
// the reservation plus the service and both parties' display identity, as seen by Viewer.
type ReservationDetail struct {
	Reservation  Reservation
	Service      ServiceListing
	Client       UserProfile
	Professional UserProfile
	Viewer       Role
}
