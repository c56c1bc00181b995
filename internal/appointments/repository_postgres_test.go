package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPGRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPGRepositoryWithDB(mock)
	now := time.Now()
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), "A", "a@gmail.com", "1234567890", "2025-03-11", "10:00", "fever", "upcoming").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	created, err := repo.Create(context.Background(), &Appointment{
		Name:     "A",
		Email:    "a@gmail.com",
		Contact:  "1234567890",
		Date:     "2025-03-11",
		Time:     "10:00",
		Symptoms: "fever",
		Status:   StatusUpcoming,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned id")
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", created.CreatedAt, now)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGRepositoryList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPGRepositoryWithDB(mock)
	now := time.Now()
	mock.ExpectQuery("SELECT id, name, email").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "contact", "date", "time", "symptoms", "status", "created_at"}).
			AddRow("id-1", "A", "a@gmail.com", "1", "2025-03-11", "09:30", "", "upcoming", now).
			AddRow("id-2", "B", "b@gmail.com", "2", "2025-03-11", "14:00", "cough", "completed", now))

	appts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("got %d appointments, want 2", len(appts))
	}
	if appts[1].Status != StatusCompleted {
		t.Fatalf("second row status = %s, want completed", appts[1].Status)
	}
}

func TestPGRepositoryGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPGRepositoryWithDB(mock)
	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("id-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "contact", "date", "time", "symptoms", "status", "created_at"}).
			AddRow("id-1", "A", "a@gmail.com", "1", "2025-03-11", "10:00", "", "upcoming", time.Now()))

	appt, err := repo.GetByID(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if appt.ID != "id-1" || appt.Status != StatusUpcoming {
		t.Fatalf("unexpected record: %+v", appt)
	}
}

func TestPGRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPGRepositoryWithDB(mock)
	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "contact", "date", "time", "symptoms", "status", "created_at"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPGRepositoryUpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPGRepositoryWithDB(mock)
	mock.ExpectExec("UPDATE appointments").
		WithArgs("id-1", "completed").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdateStatus(context.Background(), "id-1", StatusCompleted); err != nil {
		t.Fatalf("update: %v", err)
	}

	mock.ExpectExec("UPDATE appointments").
		WithArgs("missing", "cancelled").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.UpdateStatus(context.Background(), "missing", StatusCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
