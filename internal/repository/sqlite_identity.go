package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdelgad/nudge/internal/domain"
)

// SQLiteIdentityRepo implements IdentityRepo using a SQLite database.
type SQLiteIdentityRepo struct {
	db *sql.DB
}

// NewSQLiteIdentityRepo creates a new SQLiteIdentityRepo.
func NewSQLiteIdentityRepo(db *sql.DB) *SQLiteIdentityRepo {
	return &SQLiteIdentityRepo{db: db}
}

func (r *SQLiteIdentityRepo) GetProfile(ctx context.Context) (*domain.IdentityProfile, error) {
	query := `SELECT id, text, category FROM identity_statements ORDER BY position, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading identity statements: %w", err)
	}
	defer rows.Close()

	var profile domain.IdentityProfile
	for rows.Next() {
		var s domain.IdentityStatement
		var category sql.NullString
		if err := rows.Scan(&s.ID, &s.Text, &category); err != nil {
			return nil, fmt.Errorf("scanning identity statement: %w", err)
		}
		s.Category = nullableToStrPtr(category)
		profile.Statements = append(profile.Statements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating identity statements: %w", err)
	}
	return &profile, nil
}

// UpdateProfile replaces the stored profile wholesale. Statement order is
// preserved via the position column.
func (r *SQLiteIdentityRepo) UpdateProfile(ctx context.Context, profile domain.IdentityProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting identity update: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM identity_statements`); err != nil {
		return fmt.Errorf("clearing identity statements: %w", err)
	}
	for i, s := range profile.Statements {
		id := string(s.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO identity_statements (id, text, category, position, created_at) VALUES (?, ?, ?, ?, ?)`,
			id, s.Text, nullableStrToValue(s.Category), i, nowUTC()); err != nil {
			return fmt.Errorf("inserting identity statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing identity update: %w", err)
	}
	committed = true
	return nil
}
