package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"servicios_locales/internal/domain/entities"
	"servicios_locales/internal/domain/lifecycle"
	"servicios_locales/internal/infrastructure/database"
	"servicios_locales/internal/usecase"
	"servicios_locales/internal/usecase/interfaces"
)

const (
	clientID       int64 = 10
	professionalID int64 = 20
	strangerID     int64 = 99
	serviceID      int64 = 7
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "reservas.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := database.MigrateSQLite(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedDirectory(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()
	phone := "+54 11 5555-0000"
	users := NewUserRepository(db)
	for _, u := range []entities.UserProfile{
		{ID: clientID, FirstName: "Ana", LastName: "Gomez"},
		{ID: professionalID, FirstName: "Luis", LastName: "Perez", Phone: &phone},
	} {
		if err := users.UpsertUser(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	services := NewServiceListingRepository(db)
	if err := services.UpsertService(ctx, entities.ServiceListing{
		ID: serviceID, ProfessionalID: professionalID, Title: "Pintura", Category: "Hogar", BasePrice: 15000, Active: true,
	}); err != nil {
		t.Fatalf("seed service: %v", err)
	}
}

func newPending(created time.Time) entities.Reservation {
	return entities.Reservation{
		ServiceID:      serviceID,
		ClientID:       clientID,
		ProfessionalID: professionalID,
		Status:         entities.ReservationStatusPendiente,
		ActionRequired: entities.RoleProfesional,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func TestReservationRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	desc := "pintar dos ambientes"
	in := newPending(created)
	in.ClientDescription = &desc

	got, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID == 0 {
		t.Fatalf("expected generated id")
	}

	loaded, err := repo.GetByID(ctx, got.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Status != entities.ReservationStatusPendiente || loaded.ActionRequired != entities.RoleProfesional {
		t.Fatalf("unexpected status/turn: %+v", loaded)
	}
	if loaded.ClientDescription == nil || *loaded.ClientDescription != desc || !loaded.CreatedAt.Equal(created) {
		t.Fatalf("unexpected fields: %+v", loaded)
	}
	if loaded.ClientRating.Submitted || loaded.ClientRating.Score != nil || loaded.CanceledBy != entities.RoleNone {
		t.Fatalf("expected empty rating and cancel fields: %+v", loaded)
	}

	missing, err := repo.GetByID(ctx, got.ID+100)
	if err != nil || missing.ID != 0 {
		t.Fatalf("expected zero value for missing id, got %+v %v", missing, err)
	}
}

func TestReservationRepository_ApplyTransition(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC)

	r, err := repo.Create(ctx, newPending(now.Add(-time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("applies when status matches", func(t *testing.T) {
		reason := "sin disponibilidad"
		err := repo.ApplyTransition(ctx, r.ID, entities.ReservationStatusPendiente, entities.ReservationUpdate{
			Status:       entities.ReservationStatusCancelado,
			CanceledBy:   entities.RoleProfesional,
			CancelReason: &reason,
		}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := repo.GetByID(ctx, r.ID)
		if got.Status != entities.ReservationStatusCancelado || got.ActionRequired != entities.RoleNone {
			t.Fatalf("unexpected state: %+v", got)
		}
		if got.CanceledBy != entities.RoleProfesional || *got.CancelReason != reason || !got.UpdatedAt.Equal(now) {
			t.Fatalf("unexpected cancel fields: %+v", got)
		}
	})

	t.Run("stale expected status", func(t *testing.T) {
		err := repo.ApplyTransition(ctx, r.ID, entities.ReservationStatusPendiente, entities.ReservationUpdate{
			Status: entities.ReservationStatusEnProceso,
		}, now)
		if !errors.Is(err, interfaces.ErrStaleWrite) {
			t.Fatalf("expected ErrStaleWrite, got %v", err)
		}
	})
}

func TestReservationRepository_SaveRating(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	r, err := repo.Create(ctx, newPending(now))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	five := 5
	slot := entities.RatingSlot{Submitted: true, Score: &five}

	if err := repo.SaveRating(ctx, r.ID, entities.RoleCliente, slot, now); !errors.Is(err, interfaces.ErrStaleWrite) {
		t.Fatalf("expected rating on open reservation to be refused, got %v", err)
	}

	if err := repo.ApplyTransition(ctx, r.ID, entities.ReservationStatusPendiente,
		entities.ReservationUpdate{Status: entities.ReservationStatusCerrado}, now); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := repo.SaveRating(ctx, r.ID, entities.RoleCliente, slot, now); err != nil {
		t.Fatalf("first rating: %v", err)
	}

	two := 2
	err = repo.SaveRating(ctx, r.ID, entities.RoleCliente, entities.RatingSlot{Submitted: true, Score: &two}, now)
	if !errors.Is(err, interfaces.ErrStaleWrite) {
		t.Fatalf("expected second rating to be refused, got %v", err)
	}

	got, _ := repo.GetByID(ctx, r.ID)
	if !got.ClientRating.Submitted || *got.ClientRating.Score != 5 || got.ProfessionalRating.Submitted {
		t.Fatalf("unexpected ratings: %+v / %+v", got.ClientRating, got.ProfessionalRating)
	}
}

func TestReservationRepository_Lists(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	var ids []int64
	for i := 0; i < 3; i++ {
		r, err := repo.Create(ctx, newPending(base.Add(time.Duration(i)*time.Minute)))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, r.ID)
	}
	if err := repo.ApplyTransition(ctx, ids[1], entities.ReservationStatusPendiente,
		entities.ReservationUpdate{Status: entities.ReservationStatusEnProceso}, base); err != nil {
		t.Fatalf("transition: %v", err)
	}

	open := []entities.ReservationStatus{entities.ReservationStatusPendiente, entities.ReservationStatusEnNegociacion}
	got, err := repo.ListByClient(ctx, clientID, open)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != ids[2] || got[1].ID != ids[0] {
		t.Fatalf("expected newest-first open reservations, got %+v", got)
	}

	active, err := repo.ListByProfessional(ctx, professionalID, []entities.ReservationStatus{entities.ReservationStatusEnProceso})
	if err != nil || len(active) != 1 || active[0].ID != ids[1] {
		t.Fatalf("unexpected active list %+v %v", active, err)
	}

	none, err := repo.ListByClient(ctx, strangerID, open)
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil list, got %+v %v", none, err)
	}
}

func TestDirectoryRepositories(t *testing.T) {
	db := openTestDB(t)
	seedDirectory(t, db)
	ctx := context.Background()

	services := NewServiceListingRepository(db)
	svc, err := services.GetByID(ctx, serviceID)
	if err != nil || svc.ProfessionalID != professionalID || !svc.Active {
		t.Fatalf("unexpected service %+v %v", svc, err)
	}
	missing, err := services.GetByID(ctx, 404)
	if err != nil || missing.ID != 0 {
		t.Fatalf("expected zero service, got %+v %v", missing, err)
	}

	users, err := NewUserRepository(db).GetByIDs(ctx, []int64{clientID, professionalID, strangerID})
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 2 || users[professionalID].Phone == nil || users[clientID].Phone != nil {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func newUseCase(t *testing.T) *usecase.ReservationUseCase {
	t.Helper()
	db := openTestDB(t)
	seedDirectory(t, db)
	return usecase.NewReservationUseCase(
		NewReservationRepository(db),
		NewServiceListingRepository(db),
		NewUserRepository(db),
		nil,
	)
}

func TestReservationLifecycle_EndToEnd(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	// 1. client books an active service
	d, err := uc.Create(ctx, clientID, usecase.CreateReservationInput{ServiceID: serviceID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	r := d.Reservation
	if r.Status != entities.ReservationStatusPendiente || r.ActionRequired != entities.RoleProfesional ||
		r.ClientID != clientID || r.ProfessionalID != professionalID {
		t.Fatalf("unexpected created reservation: %+v", r)
	}
	if d.Service.Title != "Pintura" || d.Professional.LastName != "Perez" || d.Client.FirstName != "Ana" {
		t.Fatalf("expected joined identities, got %+v", d)
	}

	// 2. professional proposes another time
	proposed := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	d, err = uc.Transition(ctx, r.ID, lifecycle.Command{Action: lifecycle.ActionPropose, CallerID: professionalID, ProposedAt: &proposed})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if d.Reservation.Status != entities.ReservationStatusEnNegociacion || d.Reservation.ActionRequired != entities.RoleCliente ||
		!d.Reservation.ProposedAt.Equal(proposed) {
		t.Fatalf("unexpected after propose: %+v", d.Reservation)
	}

	// 3. client rejects the proposal
	msg := "no me sirve esa hora"
	d, err = uc.Transition(ctx, r.ID, lifecycle.Command{Action: lifecycle.ActionRejectProposal, CallerID: clientID, Message: &msg})
	if err != nil {
		t.Fatalf("reject proposal: %v", err)
	}
	if d.Reservation.Status != entities.ReservationStatusPendiente || d.Reservation.ActionRequired != entities.RoleProfesional ||
		*d.Reservation.ProposalMessage != msg {
		t.Fatalf("unexpected after reject: %+v", d.Reservation)
	}

	// 4. accept, finish and confirm
	steps := []lifecycle.Command{
		{Action: lifecycle.ActionAccept, CallerID: professionalID},
		{Action: lifecycle.ActionFinish, CallerID: professionalID},
	}
	for _, cmd := range steps {
		if d, err = uc.Transition(ctx, r.ID, cmd); err != nil {
			t.Fatalf("%s: %v", cmd.Action, err)
		}
	}
	if d.Reservation.Status != entities.ReservationStatusFinalizado || d.Reservation.ActionRequired != entities.RoleCliente {
		t.Fatalf("unexpected after finish: %+v", d.Reservation)
	}

	_, err = uc.Transition(ctx, r.ID, lifecycle.Command{Action: lifecycle.ActionConfirmFinish, CallerID: professionalID})
	if !errors.Is(err, lifecycle.ErrUnauthorized) {
		t.Fatalf("expected confirm by the wrong party to be unauthorized, got %v", err)
	}

	d, err = uc.Transition(ctx, r.ID, lifecycle.Command{Action: lifecycle.ActionConfirmFinish, CallerID: clientID})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if d.Reservation.Status != entities.ReservationStatusCerrado || d.Reservation.ActionRequired != entities.RoleNone {
		t.Fatalf("unexpected after confirm: %+v", d.Reservation)
	}

	// 5. both parties rate
	_, err = uc.Transition(ctx, r.ID, lifecycle.Command{Action: lifecycle.ActionCancel, CallerID: strangerID})
	if !errors.Is(err, lifecycle.ErrUnauthorized) {
		t.Fatalf("expected stranger to be unauthorized, got %v", err)
	}

	comment := "excelente"
	d, err = uc.Rate(ctx, r.ID, clientID, 5, &comment)
	if err != nil {
		t.Fatalf("client rate: %v", err)
	}
	if !d.Reservation.ClientRating.Submitted || *d.Reservation.ClientRating.Score != 5 || d.Reservation.CanSeeRatings() {
		t.Fatalf("unexpected after client rating: %+v", d.Reservation.ClientRating)
	}

	prof, err := uc.GetByID(ctx, r.ID, professionalID)
	if err != nil {
		t.Fatalf("get as professional: %v", err)
	}
	if !prof.Reservation.ClientRating.Submitted || prof.Reservation.ClientRating.Score != nil || prof.Reservation.ClientRating.Comment != nil {
		t.Fatalf("expected client rating hidden from professional, got %+v", prof.Reservation.ClientRating)
	}

	_, err = uc.Rate(ctx, r.ID, clientID, 1, nil)
	if !errors.Is(err, lifecycle.ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}

	d, err = uc.Rate(ctx, r.ID, professionalID, 4, nil)
	if err != nil {
		t.Fatalf("professional rate: %v", err)
	}
	if !d.Reservation.CanSeeRatings() || *d.Reservation.ClientRating.Score != 5 || *d.Reservation.ProfessionalRating.Score != 4 {
		t.Fatalf("expected both ratings visible: %+v / %+v", d.Reservation.ClientRating, d.Reservation.ProfessionalRating)
	}
	if *d.Reservation.ClientRating.Comment != comment {
		t.Fatalf("expected first rating comment unchanged")
	}
}

func TestReservationLifecycle_AcceptOnCanceled(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	d, err := uc.Create(ctx, clientID, usecase.CreateReservationInput{ServiceID: serviceID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.Transition(ctx, d.Reservation.ID, lifecycle.Command{Action: lifecycle.ActionCancel, CallerID: professionalID}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err = uc.Transition(ctx, d.Reservation.ID, lifecycle.Command{Action: lifecycle.ActionAccept, CallerID: professionalID})
	var te *lifecycle.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if te.Current != entities.ReservationStatusCancelado || len(te.AllowedFrom) != 2 {
		t.Fatalf("unexpected transition error: %+v", te)
	}

	list, err := uc.ListForClient(ctx, clientID, usecase.TabWaiting)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected canceled reservation out of the waiting tab, got %+v %v", list, err)
	}
}
