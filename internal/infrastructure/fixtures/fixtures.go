// Package fixtures loads catalog and user records from a YAML file into a store,
// for local environments where the owning services are not running.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"os"

	"servicios_locales/internal/domain/entities"

	"gopkg.in/yaml.v3"
)

type ServiceWriter interface {
	UpsertService(ctx context.Context, s entities.ServiceListing) error
}

type UserWriter interface {
	UpsertUser(ctx context.Context, u entities.UserProfile) error
}

type File struct {
	Users    []User    `yaml:"usuarios"`
	Services []Service `yaml:"servicios"`
}

type User struct {
	ID        int64   `yaml:"id"`
	FirstName string  `yaml:"nombre"`
	LastName  string  `yaml:"apellido"`
	PhotoURL  *string `yaml:"foto_url"`
	Phone     *string `yaml:"telefono"`
}

type Service struct {
	ID             int64   `yaml:"id"`
	ProfessionalID int64   `yaml:"profesional_id"`
	Title          string  `yaml:"titulo"`
	Category       string  `yaml:"categoria"`
	BasePrice      float64 `yaml:"precio_base"`
	Active         *bool   `yaml:"activo"`
}

// Load reads and validates a fixture file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := f.validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) validate() error {
	users := make(map[int64]bool, len(f.Users))
	for _, u := range f.Users {
		if u.ID <= 0 {
			return fmt.Errorf("usuario %q: id must be positive", u.FirstName)
		}
		if users[u.ID] {
			return fmt.Errorf("usuario %d: duplicated id", u.ID)
		}
		users[u.ID] = true
	}
	for _, s := range f.Services {
		if s.ID <= 0 {
			return fmt.Errorf("servicio %q: id must be positive", s.Title)
		}
		if s.ProfessionalID <= 0 {
			return fmt.Errorf("servicio %d: profesional_id is required", s.ID)
		}
	}
	return nil
}

// Result counts what Apply wrote.
type Result struct {
	Users    int
	Services int
}

// Apply upserts every record. It stops at the first failure.
func Apply(ctx context.Context, f File, services ServiceWriter, users UserWriter) (Result, error) {
	if services == nil || users == nil {
		return Result{}, errors.New("fixtures: both writers are required")
	}
	var res Result
	for _, u := range f.Users {
		err := users.UpsertUser(ctx, entities.UserProfile{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			PhotoURL:  u.PhotoURL,
			Phone:     u.Phone,
		})
		if err != nil {
			return res, fmt.Errorf("usuario %d: %w", u.ID, err)
		}
		res.Users++
	}
	for _, s := range f.Services {
		active := true
		if s.Active != nil {
			active = *s.Active
		}
		err := services.UpsertService(ctx, entities.ServiceListing{
			ID:             s.ID,
			ProfessionalID: s.ProfessionalID,
			Title:          s.Title,
			Category:       s.Category,
			BasePrice:      s.BasePrice,
			Active:         active,
		})
		if err != nil {
			return res, fmt.Errorf("servicio %d: %w", s.ID, err)
		}
		res.Services++
	}
	return res, nil
}
