package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/agribot/internal/db"
	"github.com/alexanderramin/agribot/internal/llm"
	"github.com/google/uuid"
)

// SQLiteCallEventRepo implements CallEventRepo using a SQLite database.
type SQLiteCallEventRepo struct {
	db db.DBTX
}

// NewSQLiteCallEventRepo creates a new SQLiteCallEventRepo.
func NewSQLiteCallEventRepo(db db.DBTX) *SQLiteCallEventRepo {
	return &SQLiteCallEventRepo{db: db}
}

// Insert stores e. An empty ID is replaced with a new UUID and a zero
// CreatedAt with the current time.
func (r *SQLiteCallEventRepo) Insert(ctx context.Context, e llm.CallEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	query := `INSERT INTO llm_calls (id, session_id, task, provider, model, latency_ms, success, error_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.SessionID,
		string(e.Task),
		string(e.Provider),
		e.Model,
		e.LatencyMs,
		boolToInt(e.Success),
		e.ErrorCode,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting llm call: %w", err)
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (r *SQLiteCallEventRepo) ListRecent(ctx context.Context, limit int) ([]llm.CallEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, session_id, task, provider, model, latency_ms, success, error_code, created_at
		FROM llm_calls ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing llm calls: %w", err)
	}
	return scanCallEvents(rows)
}

// ListBySession returns the events of one session, oldest first.
func (r *SQLiteCallEventRepo) ListBySession(ctx context.Context, sessionID string) ([]llm.CallEvent, error) {
	query := `SELECT id, session_id, task, provider, model, latency_ms, success, error_code, created_at
		FROM llm_calls WHERE session_id = ? ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing llm calls for session: %w", err)
	}
	return scanCallEvents(rows)
}

// Summary aggregates all events per task, in task order.
func (r *SQLiteCallEventRepo) Summary(ctx context.Context) ([]TaskSummary, error) {
	query := `SELECT task, COUNT(*), COALESCE(SUM(success), 0), COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
		FROM llm_calls GROUP BY task ORDER BY task`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summarizing llm calls: %w", err)
	}
	defer rows.Close()

	var out []TaskSummary
	for rows.Next() {
		var s TaskSummary
		var task string
		if err := rows.Scan(&task, &s.Calls, &s.Successes, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scanning llm call summary: %w", err)
		}
		s.Task = llm.TaskType(task)
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanCallEvents(rows *sql.Rows) ([]llm.CallEvent, error) {
	defer rows.Close()

	var events []llm.CallEvent
	for rows.Next() {
		var (
			e                       llm.CallEvent
			task, provider, created string
			success                 int
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &task, &provider, &e.Model, &e.LatencyMs, &success, &e.ErrorCode, &created); err != nil {
			return nil, fmt.Errorf("scanning llm call: %w", err)
		}
		e.Task = llm.TaskType(task)
		e.Provider = llm.Provider(provider)
		e.Success = intToBool(success)
		e.CreatedAt = parseTime(created)
		events = append(events, e)
	}
	return events, rows.Err()
}
