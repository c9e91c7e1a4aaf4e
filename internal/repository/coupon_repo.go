package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"torqrides/internal/db"
)

// ErrCouponNotFound is returned when a coupon code does not exist or is no
// longer active.
var ErrCouponNotFound = errors.New("coupon not found")

type CouponRepository struct {
	DB *sql.DB
}

func NewCouponRepository(database *sql.DB) *CouponRepository {
	return &CouponRepository{DB: database}
}

// GetActiveCoupon fetches a coupon that is active and unexpired.
func (r *CouponRepository) GetActiveCoupon(code string) (*db.Coupon, error) {
	var c db.Coupon
	query := `
		SELECT id, code, percent_off, expires_at, active, created_at
		FROM coupons
		WHERE code = $1 AND active = TRUE AND expires_at > NOW()`
	err := r.DB.QueryRow(query, code).Scan(&c.ID, &c.Code, &c.PercentOff, &c.ExpiresAt, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("error querying coupon '%s': %w", code, err)
	}
	return &c, nil
}

func (r *CouponRepository) ListCoupons() ([]db.Coupon, error) {
	rows, err := r.DB.Query(`SELECT id, code, percent_off, expires_at, active, created_at FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying coupons: %w", err)
	}
	defer rows.Close()

	var coupons []db.Coupon
	for rows.Next() {
		var c db.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.PercentOff, &c.ExpiresAt, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating coupon rows: %w", err)
	}
	return coupons, nil
}

func (r *CouponRepository) CreateCoupon(c *db.Coupon) error {
	query := `
		INSERT INTO coupons (code, percent_off, expires_at, active, created_at)
		VALUES ($1, $2, $3, TRUE, NOW())
		RETURNING id, active, created_at`
	return r.DB.QueryRow(query, c.Code, c.PercentOff, c.ExpiresAt).Scan(&c.ID, &c.Active, &c.CreatedAt)
}

func (r *CouponRepository) DeactivateCoupon(code string) error {
	result, err := r.DB.Exec(`UPDATE coupons SET active = FALSE WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("error deactivating coupon '%s': %w", code, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

// DeactivateExpiredCoupons flips active off for every expired coupon and
// returns how many were touched. Used by the cleanup job.
func (r *CouponRepository) DeactivateExpiredCoupons() (int64, error) {
	result, err := r.DB.Exec(`UPDATE coupons SET active = FALSE WHERE active = TRUE AND expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("error deactivating expired coupons: %w", err)
	}
	return result.RowsAffected()
}
