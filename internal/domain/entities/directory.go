package entities

// ServiceListing is the part of a professional's published service the reservation core needs.
//
// The catalog itself (search, photos, geo) is owned by another service; we only read it.
type ServiceListing struct {
	ID             int64
	ProfessionalID int64
	Title          string
	Category       string
	BasePrice      float64
	Active         bool
}

// UserProfile is the displayable identity of a user, joined into reservation views.
type UserProfile struct {
	ID        int64
	FirstName string
	LastName  string
	PhotoURL  *string
	Phone     *string
}
