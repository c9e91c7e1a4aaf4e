package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"torqrides/internal/db"
)

type AdminAuthRepository interface {
	GetByEmail(email string) (*db.AdminUser, error)
	CreateAdmin(email, passwordHash string) error
}

type adminAuthRepository struct {
	DB *sql.DB
}

func NewAdminAuthRepository(database *sql.DB) AdminAuthRepository {
	return &adminAuthRepository{DB: database}
}

func (r *adminAuthRepository) GetByEmail(email string) (*db.AdminUser, error) {
	var u db.AdminUser
	query := `SELECT id, email, password_hash, created_at FROM admin_users WHERE email = $1`
	err := r.DB.QueryRow(query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying admin user: %w", err)
	}
	return &u, nil
}

func (r *adminAuthRepository) CreateAdmin(email, passwordHash string) error {
	_, err := r.DB.Exec(`INSERT INTO admin_users (email, password_hash, created_at) VALUES ($1, $2, NOW())`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("error creating admin user: %w", err)
	}
	return nil
}
