package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("leads: pgx db required")
	}
	return &PostgresRepository{db: db}
}

const leadColumns = `id, name, phone, email, preferred_language, source, source_custom,
	lead_type, budget_min, budget_max, areas, beds, baths, furnishing, move_in_date,
	notes, status, priority, next_follow_up_at, last_contacted_at, is_in_dubai,
	arrival_date, created_at, updated_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest, now time.Time) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lead := req.NewLead(now)
	_, err := r.db.Exec(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		lead.ID, lead.Name, lead.Phone, lead.Email, lead.PreferredLanguage,
		lead.Source, lead.SourceCustom, lead.LeadType, lead.BudgetMin, lead.BudgetMax,
		lead.Areas, lead.Beds, lead.Baths, lead.Furnishing, lead.MoveInDate,
		lead.Notes, string(lead.Status), string(lead.Priority), lead.NextFollowUpAt,
		lead.LastContactedAt, lead.IsInDubai, lead.ArrivalDate, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("leads: insert: %w", err)
	}
	return lead, nil
}

// GetByID fetches a single lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	row := r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select: %w", err)
	}
	return lead, nil
}

// List returns leads matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	where := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf(
			"(name ILIKE %[1]s OR phone ILIKE %[1]s OR email ILIKE %[1]s OR notes ILIKE %[1]s OR array_to_string(areas, ',') ILIKE %[1]s)", p))
	}
	if filter.Status != "" {
		where = append(where, "status = "+arg(string(filter.Status)))
	}
	if filter.LeadType != "" {
		where = append(where, "lead_type = "+arg(filter.LeadType))
	}
	if filter.Source != "" {
		where = append(where, "source = "+arg(filter.Source))
	}
	if filter.Priority != "" {
		where = append(where, "priority = "+arg(string(filter.Priority)))
	}
	if filter.Language != "" {
		where = append(where, "preferred_language = "+arg(filter.Language))
	}
	if filter.BudgetMin != nil {
		where = append(where, "budget_min >= "+arg(*filter.BudgetMin))
	}
	if filter.BudgetMax != nil {
		where = append(where, "budget_max <= "+arg(*filter.BudgetMax))
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("leads: list: %w", err)
	}
	defer rows.Close()
	return scanLeads(rows)
}

// Update loads the lead, applies the partial update and writes it back.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, req *UpdateLeadRequest, now time.Time) (*Lead, error) {
	lead, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(lead, now)

	tag, err := r.db.Exec(ctx, `
		UPDATE leads SET name = $1, phone = $2, email = $3, preferred_language = $4,
			source = $5, source_custom = $6, lead_type = $7, budget_min = $8,
			budget_max = $9, areas = $10, beds = $11, baths = $12, furnishing = $13,
			move_in_date = $14, notes = $15, status = $16, priority = $17,
			next_follow_up_at = $18, is_in_dubai = $19, arrival_date = $20, updated_at = $21
		WHERE id = $22`,
		lead.Name, lead.Phone, lead.Email, lead.PreferredLanguage,
		lead.Source, lead.SourceCustom, lead.LeadType, lead.BudgetMin,
		lead.BudgetMax, lead.Areas, lead.Beds, lead.Baths, lead.Furnishing,
		lead.MoveInDate, lead.Notes, string(lead.Status), string(lead.Priority),
		lead.NextFollowUpAt, lead.IsInDubai, lead.ArrivalDate, lead.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("leads: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// Delete removes a lead; notes and notifications cascade in the schema.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("leads: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// MarkContacted records a contact touch and optionally reschedules the
// follow-up.
func (r *PostgresRepository) MarkContacted(ctx context.Context, id uuid.UUID, contactedAt time.Time, next *time.Time) (*Lead, error) {
	var tag pgconn.CommandTag
	var err error
	if next != nil {
		tag, err = r.db.Exec(ctx, `
			UPDATE leads SET last_contacted_at = $1, next_follow_up_at = $2, updated_at = $1
			WHERE id = $3`, contactedAt, *next, id)
	} else {
		tag, err = r.db.Exec(ctx, `
			UPDATE leads SET last_contacted_at = $1, updated_at = $1
			WHERE id = $2`, contactedAt, id)
	}
	if err != nil {
		return nil, fmt.Errorf("leads: mark contacted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrLeadNotFound
	}
	return r.GetByID(ctx, id)
}

func scanLead(row pgx.Row) (*Lead, error) {
	var l Lead
	var status, priority string
	err := row.Scan(
		&l.ID, &l.Name, &l.Phone, &l.Email, &l.PreferredLanguage,
		&l.Source, &l.SourceCustom, &l.LeadType, &l.BudgetMin, &l.BudgetMax,
		&l.Areas, &l.Beds, &l.Baths, &l.Furnishing, &l.MoveInDate,
		&l.Notes, &status, &priority, &l.NextFollowUpAt,
		&l.LastContactedAt, &l.IsInDubai, &l.ArrivalDate, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Status = ParseStatus(status)
	l.Priority = ParsePriority(priority)
	if l.Areas == nil {
		l.Areas = []string{}
	}
	return &l, nil
}

func scanLeads(rows pgx.Rows) ([]*Lead, error) {
	var result []*Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan: %w", err)
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}
