package sqlstore

import (
	"context"
	"database/sql"
	"strings"

	"servicios_locales/internal/domain/entities"
	"servicios_locales/internal/usecase/interfaces"
)

type ServiceListingRepository struct {
	DB *sql.DB
}

var _ interfaces.IServiceListingLookup = ServiceListingRepository{}

func NewServiceListingRepository(db *sql.DB) ServiceListingRepository {
	return ServiceListingRepository{DB: db}
}

func (r ServiceListingRepository) GetByID(ctx context.Context, id int64) (entities.ServiceListing, error) {
	var s entities.ServiceListing
	err := r.DB.QueryRowContext(ctx, `SELECT id,profesional_id,titulo,categoria,precio_base,activo FROM servicios WHERE id=?`, id).
		Scan(&s.ID, &s.ProfessionalID, &s.Title, &s.Category, &s.BasePrice, &s.Active)
	if err == sql.ErrNoRows {
		return entities.ServiceListing{}, nil
	}
	return s, err
}

func (r ServiceListingRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]entities.ServiceListing, error) {
	out := make(map[int64]entities.ServiceListing, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,profesional_id,titulo,categoria,precio_base,activo FROM servicios WHERE id IN (`+placeholders(len(ids))+`)`,
		int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s entities.ServiceListing
		if err := rows.Scan(&s.ID, &s.ProfessionalID, &s.Title, &s.Category, &s.BasePrice, &s.Active); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

// UpsertService is used by the seed command; the catalog is owned elsewhere.
func (r ServiceListingRepository) UpsertService(ctx context.Context, s entities.ServiceListing) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO servicios(id,profesional_id,titulo,categoria,precio_base,activo) VALUES (?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET profesional_id=excluded.profesional_id, titulo=excluded.titulo,
categoria=excluded.categoria, precio_base=excluded.precio_base, activo=excluded.activo`,
		s.ID, s.ProfessionalID, s.Title, s.Category, s.BasePrice, s.Active)
	return err
}

type UserRepository struct {
	DB *sql.DB
}

var _ interfaces.IUserDirectory = UserRepository{}

func NewUserRepository(db *sql.DB) UserRepository {
	return UserRepository{DB: db}
}

func (r UserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]entities.UserProfile, error) {
	out := make(map[int64]entities.UserProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,nombre,apellido,foto_url,telefono FROM usuarios WHERE id IN (`+placeholders(len(ids))+`)`,
		int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			u            entities.UserProfile
			photo, phone sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &photo, &phone); err != nil {
			return nil, err
		}
		u.PhotoURL = stringPtr(photo)
		u.Phone = stringPtr(phone)
		out[u.ID] = u
	}
	return out, rows.Err()
}

func (r UserRepository) UpsertUser(ctx context.Context, u entities.UserProfile) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO usuarios(id,nombre,apellido,foto_url,telefono) VALUES (?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET nombre=excluded.nombre, apellido=excluded.apellido,
foto_url=excluded.foto_url, telefono=excluded.telefono`,
		u.ID, u.FirstName, u.LastName, nullableString(u.PhotoURL), nullableString(u.Phone))
	return err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
