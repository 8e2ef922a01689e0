package partnerships

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osa-portal/osa-portal/internal/shared"
)

// StatRow is the minimal projection used for aggregate counts.
type StatRow struct {
	Status     Status
	Department string
}

// DashboardRow extends StatRow with the expiration date needed for the
// expiring-soon count.
type DashboardRow struct {
	Status         Status
	Department     string
	ExpirationDate time.Time
}

// Repository defines persistence operations for partnerships.
type Repository interface {
	List(ctx context.Context, filters Filters) ([]Partnership, error)
	Get(ctx context.Context, id uuid.UUID) (*Partnership, error)
	Create(ctx context.Context, p *Partnership) error
	Update(ctx context.Context, p *Partnership) error
	Delete(ctx context.Context, id uuid.UUID) error
	StatRows(ctx context.Context, department string) ([]StatRow, error)
	DashboardRows(ctx context.Context) ([]DashboardRow, error)
	MarkExpiredForRenewal(ctx context.Context) ([]Partnership, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const partnershipColumns = `id, business_name, department, address, contact_person,
	manager_supervisor_1, manager_supervisor_2, email, contact_number,
	date_established, expiration_date, school_year, status, remarks, image_url,
	created_by, created_at`

func scanPartnership(row pgx.Row) (*Partnership, error) {
	var p Partnership
	err := row.Scan(&p.ID, &p.BusinessName, &p.Department, &p.Address, &p.ContactPerson,
		&p.ManagerSupervisor1, &p.ManagerSupervisor2, &p.Email, &p.ContactNumber,
		&p.DateEstablished, &p.ExpirationDate, &p.SchoolYear, &p.Status, &p.Remarks, &p.ImageURL,
		&p.CreatedBy, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns matched records newest first.
func (r *PGRepository) List(ctx context.Context, filters Filters) ([]Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Department != "" {
		argCount++
		query += ` AND department = $` + strconv.Itoa(argCount)
		args = append(args, filters.Department)
	}
	if filters.Status != "" {
		argCount++
		query += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, filters.Status)
	}
	if filters.SchoolYear != "" {
		argCount++
		query += ` AND school_year = $` + strconv.Itoa(argCount)
		args = append(args, filters.SchoolYear)
	}
	if filters.Search != "" {
		argCount++
		query += ` AND (business_name ILIKE $` + strconv.Itoa(argCount) +
			` OR contact_person ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Partnership
	for rows.Next() {
		p, err := scanPartnership(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// Get fetches a record by primary key.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Partnership, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+partnershipColumns+` FROM partnerships WHERE id = $1`, id)
	return scanPartnership(row)
}

// Create inserts a new record.
func (r *PGRepository) Create(ctx context.Context, p *Partnership) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO partnerships (id, business_name, department, address, contact_person,
			manager_supervisor_1, manager_supervisor_2, email, contact_number,
			date_established, expiration_date, school_year, status, remarks, image_url,
			created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		p.ID, p.BusinessName, p.Department, p.Address, p.ContactPerson,
		p.ManagerSupervisor1, p.ManagerSupervisor2, p.Email, p.ContactNumber,
		p.DateEstablished, p.ExpirationDate, p.SchoolYear, p.Status, p.Remarks, p.ImageURL,
		p.CreatedBy, p.CreatedAt)
	return err
}

// Update rewrites every mutable column. Last write wins; there is no version
// column.
func (r *PGRepository) Update(ctx context.Context, p *Partnership) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE partnerships SET business_name = $1, department = $2, address = $3,
			contact_person = $4, manager_supervisor_1 = $5, manager_supervisor_2 = $6,
			email = $7, contact_number = $8, date_established = $9, expiration_date = $10,
			school_year = $11, status = $12, remarks = $13, image_url = $14
		 WHERE id = $15`,
		p.BusinessName, p.Department, p.Address, p.ContactPerson,
		p.ManagerSupervisor1, p.ManagerSupervisor2, p.Email, p.ContactNumber,
		p.DateEstablished, p.ExpirationDate, p.SchoolYear, p.Status, p.Remarks, p.ImageURL,
		p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a record by primary key.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM partnerships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// StatRows loads the status/department pairs aggregates are computed from,
// optionally restricted to one department.
func (r *PGRepository) StatRows(ctx context.Context, department string) ([]StatRow, error) {
	query := `SELECT status, department FROM partnerships`
	args := []any{}
	if department != "" {
		query += ` WHERE department = $1`
		args = append(args, department)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StatRow
	for rows.Next() {
		var row StatRow
		if err := rows.Scan(&row.Status, &row.Department); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// DashboardRows loads the projection the admin dashboard aggregates over.
func (r *PGRepository) DashboardRows(ctx context.Context) ([]DashboardRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, department, expiration_date FROM partnerships`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DashboardRow
	for rows.Next() {
		var row DashboardRow
		if err := rows.Scan(&row.Status, &row.Department, &row.ExpirationDate); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// MarkExpiredForRenewal flips active partnerships past their expiration date
// to for_renewal and returns the affected records.
func (r *PGRepository) MarkExpiredForRenewal(ctx context.Context) ([]Partnership, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE partnerships SET status = $1
		 WHERE status = $2 AND expiration_date < NOW()
		 RETURNING `+partnershipColumns,
		StatusForRenewal, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Partnership
	for rows.Next() {
		p, err := scanPartnership(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
