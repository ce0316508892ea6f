package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdelgad/nudge/internal/domain"
)

// SQLiteReviewRepo implements ReviewRepo using a SQLite database.
type SQLiteReviewRepo struct {
	db *sql.DB
}

// NewSQLiteReviewRepo creates a new SQLiteReviewRepo.
func NewSQLiteReviewRepo(db *sql.DB) *SQLiteReviewRepo {
	return &SQLiteReviewRepo{db: db}
}

func (r *SQLiteReviewRepo) Create(ctx context.Context, review domain.Review) (*domain.Review, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}
	review.ID = domain.ReviewID(uuid.NewString())
	query := `INSERT INTO reviews (id, week_of, transcript, wins, struggles, next_week_focus,
		tasks_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		string(review.ID),
		review.WeekOf.Format(dateLayout),
		review.Transcript,
		nullableStrToValue(review.Wins),
		nullableStrToValue(review.Struggles),
		nullableStrToValue(review.NextWeekFocus),
		nullableIntToValue(review.TasksCompleted),
		nowUTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting review: %w", err)
	}
	return &review, nil
}

// ListByWeek returns the reviews recorded for the given week, newest first.
func (r *SQLiteReviewRepo) ListByWeek(ctx context.Context, weekOf string) ([]domain.Review, error) {
	query := `SELECT id, week_of, transcript, wins, struggles, next_week_focus, tasks_completed
		FROM reviews WHERE week_of = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, weekOf)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rec domain.Review
		var weekOfStr string
		var wins, struggles, focus sql.NullString
		var completed sql.NullInt64
		if err := rows.Scan(&rec.ID, &weekOfStr, &rec.Transcript, &wins, &struggles, &focus, &completed); err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}
		if wk := parseNullableTime(sql.NullString{String: weekOfStr, Valid: true}, dateLayout); wk != nil {
			rec.WeekOf = *wk
		}
		rec.Wins = nullableToStrPtr(wins)
		rec.Struggles = nullableToStrPtr(struggles)
		rec.NextWeekFocus = nullableToStrPtr(focus)
		rec.TasksCompleted = nullableToIntPtr(completed)
		reviews = append(reviews, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reviews: %w", err)
	}
	return reviews, nil
}
