package response

import (
	"time"

	"servicios_locales/internal/domain/entities"
)

// ReservationResponse is the joined reservation view. Field names are a stable contract with the apps.
type ReservationResponse struct {
	ID int64 `json:"id"`

	ServiceID        int64   `json:"servicioId"`
	ServiceTitle     string  `json:"servicioTitulo"`
	ServiceCategory  string  `json:"servicioCategoria"`
	ServiceBasePrice float64 `json:"servicioPrecioBase"`

	ProfessionalID        int64   `json:"profesionalId"`
	ProfessionalFirstName string  `json:"profesionalNombre"`
	ProfessionalLastName  string  `json:"profesionalApellido"`
	ProfessionalPhotoURL  *string `json:"profesionalFotoUrl"`
	ProfessionalPhone     *string `json:"profesionalTelefono"`

	ClientID        int64   `json:"clienteId"`
	ClientFirstName string  `json:"clienteNombre"`
	ClientLastName  string  `json:"clienteApellido"`
	ClientPhotoURL  *string `json:"clienteFotoUrl"`
	ClientPhone     *string `json:"clienteTelefono"`

	Status         string  `json:"estado"`
	ActionRequired *string `json:"accionRequeridaPor"`

	ClientDescription *string    `json:"descripcionCliente"`
	RequestedAt       *time.Time `json:"fechaHoraSolicitada"`
	ProposedAt        *time.Time `json:"fechaHoraPropuesta"`
	ProposalMessage   *string    `json:"mensajePropuesta"`

	CanceledBy   *string `json:"canceladoPor"`
	CancelReason *string `json:"motivoCancelacion"`

	ClientRated         bool    `json:"clienteCalifico"`
	ClientScore         *int    `json:"clientePuntaje"`
	ClientComment       *string `json:"clienteComentario"`
	ProfessionalRated   bool    `json:"profesionalCalifico"`
	ProfessionalScore   *int    `json:"profesionalPuntaje"`
	ProfessionalComment *string `json:"profesionalComentario"`
	CanSeeRatings       bool    `json:"canSeeRatings"`

	CreatedAt time.Time `json:"creadoEn"`
	UpdatedAt time.Time `json:"actualizadoEn"`
}

func FromReservationDetail(d entities.ReservationDetail) ReservationResponse {
	r := d.Reservation
	return ReservationResponse{
		ID: r.ID,

		ServiceID:        r.ServiceID,
		ServiceTitle:     d.Service.Title,
		ServiceCategory:  d.Service.Category,
		ServiceBasePrice: d.Service.BasePrice,

		ProfessionalID:        r.ProfessionalID,
		ProfessionalFirstName: d.Professional.FirstName,
		ProfessionalLastName:  d.Professional.LastName,
		ProfessionalPhotoURL:  d.Professional.PhotoURL,
		ProfessionalPhone:     d.Professional.Phone,

		ClientID:        r.ClientID,
		ClientFirstName: d.Client.FirstName,
		ClientLastName:  d.Client.LastName,
		ClientPhotoURL:  d.Client.PhotoURL,
		ClientPhone:     d.Client.Phone,

		Status:         string(r.Status),
		ActionRequired: rolePtr(r.ActionRequired),

		ClientDescription: r.ClientDescription,
		RequestedAt:       r.RequestedAt,
		ProposedAt:        r.ProposedAt,
		ProposalMessage:   r.ProposalMessage,

		CanceledBy:   rolePtr(r.CanceledBy),
		CancelReason: r.CancelReason,

		ClientRated:         r.ClientRating.Submitted,
		ClientScore:         r.ClientRating.Score,
		ClientComment:       r.ClientRating.Comment,
		ProfessionalRated:   r.ProfessionalRating.Submitted,
		ProfessionalScore:   r.ProfessionalRating.Score,
		ProfessionalComment: r.ProfessionalRating.Comment,
		CanSeeRatings:       r.CanSeeRatings(),

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromReservationDetails(ds []entities.ReservationDetail) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromReservationDetail(d))
	}
	return out
}

func rolePtr(r entities.Role) *string {
	if r == entities.RoleNone {
		return nil
	}
	s := string(r)
	return &s
}
