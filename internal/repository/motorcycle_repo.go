package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"torqrides/internal/db"
)

type MotorcycleRepository struct {
	DB *sql.DB
}

func NewMotorcycleRepository(database *sql.DB) *MotorcycleRepository {
	return &MotorcycleRepository{DB: database}
}

const motorcycleColumns = `id, make, model, category, weekday_rate, weekend_rate, total_stock, image_url, description, created_at, updated_at`

func scanMotorcycle(row interface{ Scan(dest ...any) error }, m *db.Motorcycle) error {
	return row.Scan(
		&m.ID, &m.Make, &m.Model, &m.Category, &m.WeekdayRate, &m.WeekendRate,
		&m.TotalStock, &m.ImageURL, &m.Description, &m.CreatedAt, &m.UpdatedAt,
	)
}

func (r *MotorcycleRepository) ListMotorcycles(category string) ([]db.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY make, model`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying motorcycles: %w", err)
	}
	defer rows.Close()

	var motorcycles []db.Motorcycle
	for rows.Next() {
		var m db.Motorcycle
		if err := scanMotorcycle(rows, &m); err != nil {
			return nil, fmt.Errorf("error scanning motorcycle: %w", err)
		}
		motorcycles = append(motorcycles, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating motorcycle rows: %w", err)
	}
	return motorcycles, nil
}

func (r *MotorcycleRepository) GetMotorcycleByID(id int) (*db.Motorcycle, error) {
	var m db.Motorcycle
	row := r.DB.QueryRow(`SELECT `+motorcycleColumns+` FROM motorcycles WHERE id = $1`, id)
	if err := scanMotorcycle(row, &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("motorcycle %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying motorcycle: %w", err)
	}
	return &m, nil
}

func (r *MotorcycleRepository) CreateMotorcycle(m *db.Motorcycle) error {
	query := `
		INSERT INTO motorcycles (make, model, category, weekday_rate, weekend_rate, total_stock, image_url, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		m.Make, m.Model, m.Category, m.WeekdayRate, m.WeekendRate, m.TotalStock, m.ImageURL, m.Description,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MotorcycleRepository) UpdateMotorcycle(m *db.Motorcycle) error {
	query := `
		UPDATE motorcycles
		SET make = $2, model = $3, category = $4, weekday_rate = $5, weekend_rate = $6,
		    total_stock = $7, image_url = $8, description = $9, updated_at = NOW()
		WHERE id = $1`
	result, err := r.DB.Exec(query,
		m.ID, m.Make, m.Model, m.Category, m.WeekdayRate, m.WeekendRate, m.TotalStock, m.ImageURL, m.Description,
	)
	if err != nil {
		return fmt.Errorf("error updating motorcycle %d: %w", m.ID, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("motorcycle %d not found", m.ID)
	}
	return nil
}

func (r *MotorcycleRepository) UpdateStock(id, totalStock int) error {
	result, err := r.DB.Exec(`UPDATE motorcycles SET total_stock = $2, updated_at = NOW() WHERE id = $1`, id, totalStock)
	if err != nil {
		return fmt.Errorf("error updating stock for motorcycle %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("motorcycle %d not found", id)
	}
	return nil
}

func (r *MotorcycleRepository) DeleteMotorcycle(id int) error {
	result, err := r.DB.Exec(`DELETE FROM motorcycles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting motorcycle %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("motorcycle %d not found", id)
	}
	return nil
}
