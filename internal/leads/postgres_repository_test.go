package leads

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var leadRowColumns = []string{
	"id", "name", "phone", "email", "preferred_language", "source", "source_custom",
	"lead_type", "budget_min", "budget_max", "areas", "beds", "baths", "furnishing",
	"move_in_date", "notes", "status", "priority", "next_follow_up_at",
	"last_contacted_at", "is_in_dubai", "arrival_date", "created_at", "updated_at",
}

func leadRow(id uuid.UUID, name string, now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(leadRowColumns).AddRow(
		id, name, "+971501234567", "lead@example.com", "en", "website", "",
		"buy", nil, nil, []string{"Dubai Marina"}, nil, nil, "",
		nil, "", "New", "Med", nil,
		nil, true, nil, now, now,
	)
}

func TestPostgresRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO leads").
		WithArgs(
			pgxmock.AnyArg(), "Omar", "+971501234567", "", "", "", "", "",
			pgxmock.AnyArg(), pgxmock.AnyArg(), []string{}, pgxmock.AnyArg(), pgxmock.AnyArg(),
			"", pgxmock.AnyArg(), "", "New", "Med",
			pgxmock.AnyArg(), pgxmock.AnyArg(), true, pgxmock.AnyArg(), now, now,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	lead, err := repo.Create(context.Background(), &CreateLeadRequest{Name: "Omar", Phone: "+971501234567"}, now)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if lead.Status != StatusNew || lead.Priority != PriorityMed {
		t.Fatalf("unexpected defaults: %s/%s", lead.Status, lead.Priority)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepositoryGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM leads WHERE id").
		WithArgs(id).
		WillReturnRows(leadRow(id, "Omar", now))

	lead, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if lead.Name != "Omar" {
		t.Fatalf("unexpected lead: %#v", lead)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM leads WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(leadRowColumns))

	if _, err := repo.GetByID(context.Background(), id); err != ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestPostgresRepositoryListWithFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM leads WHERE .+ILIKE.+status = .+ ORDER BY created_at DESC").
		WithArgs("%marina%", "New").
		WillReturnRows(leadRow(uuid.New(), "Marina Buyer", now))

	got, err := repo.List(context.Background(), ListFilter{Search: "marina", Status: StatusNew})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Marina Buyer" {
		t.Fatalf("unexpected result: %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepositoryDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM leads").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	mock.ExpectExec("DELETE FROM leads").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), id); err != ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestPostgresRepositoryMarkContacted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	id := uuid.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	next := now.Add(DefaultFollowUpDelay)

	mock.ExpectExec("UPDATE leads SET last_contacted_at").
		WithArgs(now, next, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("SELECT .+ FROM leads WHERE id").
		WithArgs(id).
		WillReturnRows(leadRow(id, "Omar", now))

	lead, err := repo.MarkContacted(context.Background(), id, now, &next)
	if err != nil {
		t.Fatalf("mark contacted failed: %v", err)
	}
	if lead.ID != id {
		t.Fatalf("unexpected lead: %#v", lead)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
