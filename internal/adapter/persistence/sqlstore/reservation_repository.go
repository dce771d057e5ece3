// Package sqlstore is the single-node SQLite rendition of the reservation store
// and of the service and user directories.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"servicios_locales/internal/domain/entities"
	"servicios_locales/internal/usecase/interfaces"
)

// timeLayout matches the DynamoDB adapter so creado_en orders the same way in both stores.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const reservationColumns = `id,servicio_id,cliente_id,profesional_id,estado,accion_requerida_por,
descripcion_cliente,fecha_hora_solicitada,fecha_hora_propuesta,mensaje_propuesta,
cancelado_por,motivo_cancelacion,
cliente_califico,cliente_puntaje,cliente_comentario,
profesional_califico,profesional_puntaje,profesional_comentario,
creado_en,actualizado_en`

type ReservationRepository struct {
	DB *sql.DB
}

var _ interfaces.IReservationRepository = ReservationRepository{}

func NewReservationRepository(db *sql.DB) ReservationRepository {
	return ReservationRepository{DB: db}
}

func (r ReservationRepository) Create(ctx context.Context, e entities.Reservation) (entities.Reservation, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO reservas(
servicio_id,cliente_id,profesional_id,estado,accion_requerida_por,
descripcion_cliente,fecha_hora_solicitada,fecha_hora_propuesta,mensaje_propuesta,
cancelado_por,motivo_cancelacion,creado_en,actualizado_en) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.ServiceID, e.ClientID, e.ProfessionalID, string(e.Status), nullableRole(e.ActionRequired),
		nullableString(e.ClientDescription), nullableTime(e.RequestedAt), nullableTime(e.ProposedAt), nullableString(e.ProposalMessage),
		nullableRole(e.CanceledBy), nullableString(e.CancelReason), formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return entities.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return entities.Reservation{}, err
	}
	e.ID = id
	return e, nil
}

// GetByID returns the zero Reservation when id does not exist.
func (r ReservationRepository) GetByID(ctx context.Context, id int64) (entities.Reservation, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservas WHERE id=?`, id)
	e, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return entities.Reservation{}, nil
	}
	return e, err
}

func (r ReservationRepository) ListByClient(ctx context.Context, clientID int64, statuses []entities.ReservationStatus) ([]entities.Reservation, error) {
	return r.listByParty(ctx, "cliente_id", clientID, statuses)
}

func (r ReservationRepository) ListByProfessional(ctx context.Context, professionalID int64, statuses []entities.ReservationStatus) ([]entities.Reservation, error) {
	return r.listByParty(ctx, "profesional_id", professionalID, statuses)
}

func (r ReservationRepository) listByParty(ctx context.Context, column string, partyID int64, statuses []entities.ReservationStatus) ([]entities.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservas WHERE ` + column + `=?`
	args := []any{partyID}
	if len(statuses) > 0 {
		query += ` AND estado IN (` + placeholders(len(statuses)) + `)`
		for _, s := range statuses {
			args = append(args, string(s))
		}
	}
	query += ` ORDER BY creado_en DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]entities.Reservation, 0)
	for rows.Next() {
		e, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r ReservationRepository) ApplyTransition(
	ctx context.Context,
	id int64,
	expected entities.ReservationStatus,
	upd entities.ReservationUpdate,
	now time.Time,
) error {
	fields := []string{"estado=?", "accion_requerida_por=?", "actualizado_en=?"}
	args := []any{string(upd.Status), nullableRole(upd.ActionRequired), formatTime(now)}
	if upd.ProposedAt != nil {
		fields = append(fields, "fecha_hora_propuesta=?")
		args = append(args, formatTime(*upd.ProposedAt))
	}
	if upd.ProposalMessage != nil {
		fields = append(fields, "mensaje_propuesta=?")
		args = append(args, *upd.ProposalMessage)
	}
	if upd.CanceledBy != entities.RoleNone {
		fields = append(fields, "cancelado_por=?")
		args = append(args, string(upd.CanceledBy))
	}
	if upd.CancelReason != nil {
		fields = append(fields, "motivo_cancelacion=?")
		args = append(args, *upd.CancelReason)
	}
	args = append(args, id, string(expected))

	res, err := r.DB.ExecContext(ctx,
		fmt.Sprintf(`UPDATE reservas SET %s WHERE id=? AND estado=?`, strings.Join(fields, ",")), args...)
	if err != nil {
		return err
	}
	return staleIfUnchanged(res)
}

func (r ReservationRepository) SaveRating(ctx context.Context, id int64, role entities.Role, slot entities.RatingSlot, now time.Time) error {
	prefix := "cliente"
	if role == entities.RoleProfesional {
		prefix = "profesional"
	}
	var score any
	if slot.Score != nil {
		score = *slot.Score
	}
	query := fmt.Sprintf(`UPDATE reservas SET %[1]s_califico=1, %[1]s_puntaje=?, %[1]s_comentario=?, actualizado_en=?
WHERE id=? AND estado=? AND %[1]s_califico=0`, prefix)
	res, err := r.DB.ExecContext(ctx, query,
		score, nullableString(slot.Comment), formatTime(now), id, string(entities.ReservationStatusCerrado))
	if err != nil {
		return err
	}
	return staleIfUnchanged(res)
}

func staleIfUnchanged(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return interfaces.ErrStaleWrite
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(s scanner) (entities.Reservation, error) {
	var (
		e                                      entities.Reservation
		status                                 string
		action, canceledBy                     sql.NullString
		description, proposalMsg, cancelReason sql.NullString
		requestedAt, proposedAt                sql.NullString
		clientRated, professionalRated         bool
		clientScore, professionalScore         sql.NullInt64
		clientComment, professionalComment     sql.NullString
		createdAt, updatedAt                   string
	)
	err := s.Scan(&e.ID, &e.ServiceID, &e.ClientID, &e.ProfessionalID, &status, &action,
		&description, &requestedAt, &proposedAt, &proposalMsg,
		&canceledBy, &cancelReason,
		&clientRated, &clientScore, &clientComment,
		&professionalRated, &professionalScore, &professionalComment,
		&createdAt, &updatedAt)
	if err != nil {
		return entities.Reservation{}, err
	}

	e.Status = entities.ReservationStatus(status)
	e.ActionRequired = entities.Role(action.String)
	e.CanceledBy = entities.Role(canceledBy.String)
	e.ClientDescription = stringPtr(description)
	e.ProposalMessage = stringPtr(proposalMsg)
	e.CancelReason = stringPtr(cancelReason)
	e.RequestedAt = timePtr(requestedAt)
	e.ProposedAt = timePtr(proposedAt)
	e.ClientRating = entities.RatingSlot{Submitted: clientRated, Score: intPtr(clientScore), Comment: stringPtr(clientComment)}
	e.ProfessionalRating = entities.RatingSlot{Submitted: professionalRated, Score: intPtr(professionalScore), Comment: stringPtr(professionalComment)}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableRole(r entities.Role) any {
	if r == entities.RoleNone {
		return nil
	}
	return string(r)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func timePtr(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t := parseTime(v.String)
	return &t
}
