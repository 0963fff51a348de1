// File: database/repository/reservation/postgres.go
package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rapstation/models"
)

const reservationColumns = `code, resource, date, time_slot, status, name_opaque, phone_opaque, payment_method, created_at, updated_at`

// PostgresReservationRepo stores reservations in the reservations table.
type PostgresReservationRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresReservationRepo constructs a PostgreSQL ReservationRepository.
func NewPostgresReservationRepo(pool *pgxpool.Pool) *PostgresReservationRepo {
	return &PostgresReservationRepo{pool: pool}
}

func (r *PostgresReservationRepo) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	where, args := buildWhere(filter)
	rows, err := r.pool.Query(ctx, `SELECT `+reservationColumns+` FROM reservations`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *PostgresReservationRepo) GetByCode(ctx context.Context, code string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE code = $1`, code)
	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PostgresReservationRepo) Insert(ctx context.Context, res *models.Reservation) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if res.CreatedAt.IsZero() {
		res.CreatedAt = now
	}
	res.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, res.Code, res.Resource, res.Date, res.Interval, string(res.Status), res.NameOpaque, res.PhoneOpaque,
		res.PaymentMethod, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return res, nil
}

func (r *PostgresReservationRepo) UpsertByCode(ctx context.Context, code string, fields models.ReservationFields) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cols := []string{"code"}
	args := []any{code}
	add := func(col string, v any) {
		cols = append(cols, col)
		args = append(args, v)
	}
	if fields.Resource != nil {
		add("resource", *fields.Resource)
	}
	if fields.Date != nil {
		add("date", *fields.Date)
	}
	if fields.Interval != nil {
		add("time_slot", *fields.Interval)
	}
	if fields.Status != nil {
		add("status", string(*fields.Status))
	}
	if fields.NameOpaque != nil {
		add("name_opaque", *fields.NameOpaque)
	}
	if fields.PhoneOpaque != nil {
		add("phone_opaque", *fields.PhoneOpaque)
	}
	if fields.PaymentMethod != nil {
		add("payment_method", *fields.PaymentMethod)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	updates := []string{"updated_at = now()"}
	for _, c := range cols[1:] {
		updates = append(updates, c+" = EXCLUDED."+c)
	}

	query := `INSERT INTO reservations (` + strings.Join(cols, ", ") + `)
		VALUES (` + strings.Join(placeholders, ", ") + `)
		ON CONFLICT (code) DO UPDATE SET ` + strings.Join(updates, ", ") + `
		RETURNING ` + reservationColumns

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("upsert reservation %s: %w", code, err)
	}
	return &res, nil
}

func (r *PostgresReservationRepo) UpdateStatus(ctx context.Context, code string, status models.ReservationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `UPDATE reservations SET status = $2, updated_at = now() WHERE code = $1`, code, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresReservationRepo) CancelPlaceholder(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE reservations SET status = $2, updated_at = now() WHERE code = $1 AND status = $3 AND time_slot = $4`,
		code, string(models.StatusCancelled), string(models.StatusRequested), models.IntervalUnselected)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresReservationRepo) Delete(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE code = $1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildWhere renders the filter as a WHERE clause with positional arguments.
func buildWhere(f models.ReservationFilter) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Date != "" {
		conds = append(conds, "date = "+next(f.Date))
	}
	if f.Resource != "" {
		conds = append(conds, "resource = "+next(f.Resource))
	}
	if len(f.StatusIn) > 0 {
		statuses := make([]string, len(f.StatusIn))
		for i, s := range f.StatusIn {
			statuses[i] = string(s)
		}
		conds = append(conds, "status = ANY("+next(statuses)+")")
	}
	if f.IntervalNot != "" {
		conds = append(conds, "time_slot <> "+next(f.IntervalNot))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanReservation(row pgx.Row) (models.Reservation, error) {
	var res models.Reservation
	var status string
	err := row.Scan(&res.Code, &res.Resource, &res.Date, &res.Interval, &status, &res.NameOpaque, &res.PhoneOpaque,
		&res.PaymentMethod, &res.CreatedAt, &res.UpdatedAt)
	res.Status = models.ReservationStatus(status)
	return res, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
