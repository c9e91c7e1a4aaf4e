package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"torqrides/internal/db"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, code, customer_name, customer_email, customer_phone, motorcycle_id, pickup_time, dropoff_time, status, payment_method_id, quoted_total, amount_paid, stripe_session_id, payment_status, created_at, updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }, b *db.Booking) error {
	return row.Scan(
		&b.ID, &b.Code, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.MotorcycleID, &b.PickupTime, &b.DropoffTime, &b.Status, &b.PaymentMethodID,
		&b.QuotedTotal, &b.AmountPaid, &b.StripeSessionID, &b.PaymentStatus,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

// CountOverlapping returns how many non-cancelled bookings for the motorcycle
// overlap the given period.
func (r *BookingRepository) CountOverlapping(motorcycleID int, pickup, dropoff time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE motorcycle_id = $1
		  AND status IN ('pending', 'active')
		  AND pickup_time < $3
		  AND dropoff_time > $2`
	var count int
	err := r.DB.QueryRow(query, motorcycleID, pickup, dropoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return count, nil
}

// CountOverlappingExcluding is CountOverlapping minus one booking. Used when
// a booking's period is modified, so its own current window does not count
// against the stock it already holds.
func (r *BookingRepository) CountOverlappingExcluding(motorcycleID int, pickup, dropoff time.Time, excludeCode string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE motorcycle_id = $1
		  AND status IN ('pending', 'active')
		  AND pickup_time < $3
		  AND dropoff_time > $2
		  AND code <> $4`
	var count int
	err := r.DB.QueryRow(query, motorcycleID, pickup, dropoff, excludeCode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return count, nil
}

func (r *BookingRepository) CreateBooking(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, customer_name, customer_email, customer_phone, motorcycle_id, pickup_time, dropoff_time, status, payment_method_id, quoted_total, amount_paid, stripe_session_id, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		b.Code, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.MotorcycleID, b.PickupTime, b.DropoffTime, b.Status, b.PaymentMethodID,
		b.QuotedTotal, b.AmountPaid, b.StripeSessionID, b.PaymentStatus,
		b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetBookingByCode(code, email string) (*db.Booking, error) {
	var b db.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1 AND customer_email = $2`
	if err := scanBooking(r.DB.QueryRow(query, code, email), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' and email '%s' not found: %w", code, email, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) GetBookingByCodeOnly(code string) (*db.Booking, error) {
	var b db.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1`
	if err := scanBooking(r.DB.QueryRow(query, code), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) GetBookingByStripeSessionID(sessionID string) (*db.Booking, error) {
	var b db.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE stripe_session_id = $1`
	if err := scanBooking(r.DB.QueryRow(query, sessionID), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking for stripe session '%s' not found: %w", sessionID, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) UpdateBookingPeriod(code string, pickup, dropoff time.Time, quotedTotal int) error {
	query := `UPDATE bookings SET pickup_time = $2, dropoff_time = $3, quoted_total = $4, updated_at = NOW() WHERE code = $1`
	result, err := r.DB.Exec(query, code, pickup, dropoff, quotedTotal)
	if err != nil {
		return fmt.Errorf("error updating booking period: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking with code '%s' not found", code)
	}
	return nil
}

func (r *BookingRepository) CancelBooking(code string) (string, error) {
	query := `UPDATE bookings SET status = 'cancelled', updated_at = NOW() WHERE code = $1 RETURNING status`
	var status string
	if err := r.DB.QueryRow(query, code).Scan(&status); err != nil {
		return "", fmt.Errorf("error cancelling booking '%s': %w", code, err)
	}
	return status, nil
}

func (r *BookingRepository) UpdateStatusAndPaymentBySessionID(sessionID, status, paymentStatus string) error {
	query := `UPDATE bookings SET status = $2, payment_status = $3, updated_at = NOW() WHERE stripe_session_id = $1`
	result, err := r.DB.Exec(query, sessionID, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("error updating booking status for session '%s': %w", sessionID, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking for stripe session '%s' not found", sessionID)
	}
	return nil
}

func (r *BookingRepository) ListBookings(date, status string, motorcycleID, limit, offset int) ([]db.Booking, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if date != "" {
		args = append(args, date)
		where += fmt.Sprintf(` AND pickup_time::date = $%d`, len(args))
	}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if motorcycleID > 0 {
		args = append(args, motorcycleID)
		where += fmt.Sprintf(` AND motorcycle_id = $%d`, len(args))
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + bookingColumns + ` FROM bookings` + where +
		fmt.Sprintf(` ORDER BY pickup_time DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, 0, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, total, nil
}

func (r *BookingRepository) DeleteBookingByID(id int) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking %d not found", id)
	}
	return nil
}
