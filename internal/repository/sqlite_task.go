package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jdelgad/nudge/internal/domain"
)

const dateLayout = "2006-01-02"

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, name, status, mentioned, blocked_by, energy, task_type,
		complete_time_minutes, priority, source, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db *sql.DB
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Query(ctx context.Context, q TaskQuery) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var conds []string
	var args []interface{}
	if q.Status != nil {
		conds = append(conds, `status = ?`)
		args = append(args, string(*q.Status))
	}
	if q.ExcludeDone {
		conds = append(conds, `status NOT IN ('Done', 'Won''t Do')`)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) Get(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, string(id))
	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	now := nowUTC()
	query := `INSERT INTO tasks (id, name, status, mentioned, blocked_by, energy, task_type,
		complete_time_minutes, priority, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		id,
		draft.Name,
		string(draft.Status),
		draft.Mentioned,
		nullableStrToValue(draft.BlockedBy),
		energyToValue(draft.Energy),
		taskTypeToValue(draft.TaskType),
		nullableIntToValue(draft.CompleteTimeMinutes),
		nullableIntToValue(draft.Priority),
		nullableStrToValue(draft.Source),
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}
	return r.Get(ctx, domain.TaskID(id))
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, m domain.TaskMutation) (*domain.Task, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var sets []string
	var args []interface{}
	if m.Name != nil {
		sets = append(sets, `name = ?`)
		args = append(args, *m.Name)
	}
	if m.Status != nil {
		sets = append(sets, `status = ?`)
		args = append(args, string(*m.Status))
	}
	if m.Mentioned != nil {
		sets = append(sets, `mentioned = ?`)
		args = append(args, *m.Mentioned)
	}
	if m.BlockedBy != nil {
		sets = append(sets, `blocked_by = ?`)
		args = append(args, *m.BlockedBy)
	}
	if m.Energy != nil {
		sets = append(sets, `energy = ?`)
		args = append(args, string(*m.Energy))
	}
	if m.TaskType != nil {
		sets = append(sets, `task_type = ?`)
		args = append(args, string(*m.TaskType))
	}
	if m.CompleteTimeMinutes != nil {
		sets = append(sets, `complete_time_minutes = ?`)
		args = append(args, *m.CompleteTimeMinutes)
	}
	if m.Priority != nil {
		sets = append(sets, `priority = ?`)
		args = append(args, *m.Priority)
	}
	sets = append(sets, `updated_at = ?`)
	args = append(args, nowUTC())
	args = append(args, string(m.TaskID))

	query := `UPDATE tasks SET ` + strings.Join(sets, `, `) + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("task %s: %w", m.TaskID, ErrNotFound)
	}
	return r.Get(ctx, m.TaskID)
}

func (r *SQLiteTaskRepo) IncrementMentioned(ctx context.Context, id domain.TaskID) (int, error) {
	// Single-statement increment so concurrent captures never lose counts.
	query := `UPDATE tasks SET mentioned = mentioned + 1, updated_at = ? WHERE id = ? RETURNING mentioned`
	var mentioned int
	err := r.db.QueryRowContext(ctx, query, nowUTC(), string(id)).Scan(&mentioned)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return 0, fmt.Errorf("incrementing mentioned: %w", err)
	}
	return mentioned, nil
}

func energyToValue(e *domain.EnergyLevel) interface{} {
	if e == nil {
		return nil
	}
	return string(*e)
}

func taskTypeToValue(t *domain.TaskType) interface{} {
	if t == nil {
		return nil
	}
	return string(*t)
}

// scanTask scans a single task from a *sql.Row. Returns sql.ErrNoRows
// unwrapped so callers can map it to ErrNotFound with context.
func scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var statusStr string
	var blockedBy, energy, taskType, source sql.NullString
	var completeTime, priority sql.NullInt64
	var createdAtStr, updatedAtStr sql.NullString

	err := row.Scan(
		&t.ID, &t.Name, &statusStr, &t.Mentioned, &blockedBy, &energy, &taskType,
		&completeTime, &priority, &source, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}
	populateTask(&t, statusStr, blockedBy, energy, taskType, source, completeTime, priority, createdAtStr, updatedAtStr)
	return &t, nil
}

// scanTasks scans multiple tasks from *sql.Rows.
func scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var statusStr string
		var blockedBy, energy, taskType, source sql.NullString
		var completeTime, priority sql.NullInt64
		var createdAtStr, updatedAtStr sql.NullString

		err := rows.Scan(
			&t.ID, &t.Name, &statusStr, &t.Mentioned, &blockedBy, &energy, &taskType,
			&completeTime, &priority, &source, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		populateTask(&t, statusStr, blockedBy, energy, taskType, source, completeTime, priority, createdAtStr, updatedAtStr)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func populateTask(
	t *domain.Task,
	statusStr string,
	blockedBy, energy, taskType, source sql.NullString,
	completeTime, priority sql.NullInt64,
	createdAtStr, updatedAtStr sql.NullString,
) {
	t.Status = domain.TaskStatus(statusStr)
	t.BlockedBy = nullableToStrPtr(blockedBy)
	if energy.Valid {
		e := domain.EnergyLevel(energy.String)
		t.Energy = &e
	}
	if taskType.Valid {
		tt := domain.TaskType(taskType.String)
		t.TaskType = &tt
	}
	t.CompleteTimeMinutes = nullableToIntPtr(completeTime)
	t.Priority = nullableToIntPtr(priority)
	t.Source = nullableToStrPtr(source)
	t.CreatedAt = parseNullableTime(createdAtStr, time.RFC3339)
	t.UpdatedAt = parseNullableTime(updatedAtStr, time.RFC3339)
}
