package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketing/internal/domain"
)

type EmployeeRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Employee, error)
}

type PGEmployeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) EmployeeRepository {
	return &PGEmployeeRepository{db: db}
}

func (r *PGEmployeeRepository) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, password_hash, full_name, created_at FROM employees WHERE username=$1`, username)
	var e domain.Employee
	if err := row.Scan(&e.ID, &e.Username, &e.PasswordHash, &e.FullName, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

var _ EmployeeRepository = (*PGEmployeeRepository)(nil)
