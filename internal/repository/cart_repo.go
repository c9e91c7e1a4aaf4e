package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"torqrides/internal/db"
)

type CartRepository struct {
	DB *sql.DB
}

func NewCartRepository(database *sql.DB) *CartRepository {
	return &CartRepository{DB: database}
}

// GetOrCreateCart returns the cart for a session key, creating it on first use.
func (r *CartRepository) GetOrCreateCart(sessionKey string) (*db.Cart, error) {
	var c db.Cart
	query := `SELECT id, session_key, COALESCE(coupon_code, ''), created_at, updated_at FROM carts WHERE session_key = $1`
	err := r.DB.QueryRow(query, sessionKey).Scan(&c.ID, &c.SessionKey, &c.CouponCode, &c.CreatedAt, &c.UpdatedAt)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error querying cart: %w", err)
	}

	insert := `INSERT INTO carts (session_key, created_at, updated_at) VALUES ($1, NOW(), NOW()) RETURNING id, session_key, '', created_at, updated_at`
	if err := r.DB.QueryRow(insert, sessionKey).Scan(&c.ID, &c.SessionKey, &c.CouponCode, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("error creating cart: %w", err)
	}
	return &c, nil
}

func (r *CartRepository) ListItems(cartID int) ([]db.CartItem, error) {
	query := `SELECT id, cart_id, motorcycle_id, pickup_time, dropoff_time, quantity, created_at FROM cart_items WHERE cart_id = $1 ORDER BY created_at`
	rows, err := r.DB.Query(query, cartID)
	if err != nil {
		return nil, fmt.Errorf("error querying cart items: %w", err)
	}
	defer rows.Close()

	var items []db.CartItem
	for rows.Next() {
		var it db.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.MotorcycleID, &it.PickupTime, &it.DropoffTime, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning cart item: %w", err)
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating cart item rows: %w", err)
	}
	return items, nil
}

func (r *CartRepository) AddItem(it *db.CartItem) error {
	query := `
		INSERT INTO cart_items (cart_id, motorcycle_id, pickup_time, dropoff_time, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`
	return r.DB.QueryRow(query, it.CartID, it.MotorcycleID, it.PickupTime, it.DropoffTime, it.Quantity).
		Scan(&it.ID, &it.CreatedAt)
}

func (r *CartRepository) RemoveItem(cartID, itemID int) error {
	result, err := r.DB.Exec(`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("error removing cart item %d: %w", itemID, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("cart item %d not found", itemID)
	}
	return nil
}

func (r *CartRepository) SetCoupon(cartID int, code string) error {
	var value any
	if code != "" {
		value = code
	}
	_, err := r.DB.Exec(`UPDATE carts SET coupon_code = $2, updated_at = NOW() WHERE id = $1`, cartID, value)
	if err != nil {
		return fmt.Errorf("error setting cart coupon: %w", err)
	}
	return nil
}

// DeleteCartsUpdatedBefore removes carts (and their items) that have not been
// touched since the given time. Used by the cleanup job.
func (r *CartRepository) DeleteCartsUpdatedBefore(before time.Time) (int64, error) {
	if _, err := r.DB.Exec(`DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE updated_at < $1)`, before); err != nil {
		return 0, fmt.Errorf("error deleting stale cart items: %w", err)
	}
	result, err := r.DB.Exec(`DELETE FROM carts WHERE updated_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale carts: %w", err)
	}
	return result.RowsAffected()
}
