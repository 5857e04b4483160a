package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrReportNotFound is returned when a report id has no row.
var ErrReportNotFound = errors.New("report not found")

// Repository persists reports in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a report repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateReportParams carries one report row to insert.
type CreateReportParams struct {
	ID            uuid.UUID
	IssueType     string
	Description   string
	Address       string
	Locality      string
	City          string
	State         string
	PostalCode    string
	Lat           *float64
	Lng           *float64
	PhotoURLs     []string
	IsAnonymous   bool
	ReporterID    *uuid.UUID
	IdentityProof string
	ContactPhone  string
}

// Report is one stored report row.
type Report struct {
	ID           uuid.UUID
	IssueType    string
	Description  string
	Address      string
	Locality     string
	City         string
	State        string
	PostalCode   string
	Lat          *float64
	Lng          *float64
	PhotoURLs    []string
	IsAnonymous  bool
	ReporterID   *uuid.UUID
	ContactPhone string
}

// CreateReport inserts the report and returns its id.
func (r *Repository) CreateReport(ctx context.Context, params CreateReportParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reports (
			id, issue_type, description, address, locality, city, state,
			postal_code, lat, lng, photo_urls, is_anonymous, reporter_id,
			identity_proof, contact_phone
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`,
		params.ID, params.IssueType, params.Description, params.Address,
		params.Locality, params.City, params.State, params.PostalCode,
		params.Lat, params.Lng, params.PhotoURLs, params.IsAnonymous,
		params.ReporterID, nullable(params.IdentityProof), params.ContactPhone,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert report: %w", err)
	}
	return id, nil
}

// GetReport fetches one report by id.
func (r *Repository) GetReport(ctx context.Context, id uuid.UUID) (Report, error) {
	var rep Report
	err := r.pool.QueryRow(ctx, `
		SELECT id, issue_type, description, address, locality, city, state,
		       postal_code, lat, lng, photo_urls, is_anonymous, reporter_id,
		       contact_phone
		FROM reports
		WHERE id = $1
	`, id).Scan(
		&rep.ID, &rep.IssueType, &rep.Description, &rep.Address,
		&rep.Locality, &rep.City, &rep.State, &rep.PostalCode,
		&rep.Lat, &rep.Lng, &rep.PhotoURLs, &rep.IsAnonymous,
		&rep.ReporterID, &rep.ContactPhone,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Report{}, ErrReportNotFound
	}
	if err != nil {
		return Report{}, fmt.Errorf("failed to fetch report %s: %w", id, err)
	}
	return rep, nil
}

// ListMissingCoordinates returns reports without a stored fix, oldest first.
// Used by the coordinate backfill command.
func (r *Repository) ListMissingCoordinates(ctx context.Context, limit int) ([]Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, issue_type, description, address, locality, city, state,
		       postal_code, lat, lng, photo_urls, is_anonymous, reporter_id,
		       contact_phone
		FROM reports
		WHERE lat IS NULL OR lng IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports missing coordinates: %w", err)
	}
	defer rows.Close()

	items := make([]Report, 0)
	for rows.Next() {
		var rep Report
		if err := rows.Scan(
			&rep.ID, &rep.IssueType, &rep.Description, &rep.Address,
			&rep.Locality, &rep.City, &rep.State, &rep.PostalCode,
			&rep.Lat, &rep.Lng, &rep.PhotoURLs, &rep.IsAnonymous,
			&rep.ReporterID, &rep.ContactPhone,
		); err != nil {
			return nil, err
		}
		items = append(items, rep)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

// UpdateCoordinates stores a backfilled fix on a report.
func (r *Repository) UpdateCoordinates(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reports SET lat = $2, lng = $3, updated_at = now()
		WHERE id = $1
	`, id, lat, lng)
	if err != nil {
		return fmt.Errorf("failed to update coordinates for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
