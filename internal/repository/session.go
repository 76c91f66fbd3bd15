package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	sessionColumns = `id, task_id, kind, planned_minutes, actual_minutes, started_at, ended_at`

	// частичный уникальный индекс из миграции 000001
	activeSessionIndex = "session_one_active_per_task"

	pgUniqueViolation = "23505"
)

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

func scanSession(row pgx.Row) (*entity.Session, error) {
	var (
		session entity.Session
		kind    string
	)
	err := row.Scan(
		&session.ID,
		&session.TaskID,
		&kind,
		&session.PlannedMinutes,
		&session.ActualMinutes,
		&session.StartedAt,
		&session.EndedAt,
	)
	if err != nil {
		return nil, err
	}

	session.Kind, err = entity.ParseSessionKind(kind)
	if err != nil {
		return nil, err
	}
	session.StartedAt = session.StartedAt.UTC()
	if session.EndedAt != nil {
		ended := session.EndedAt.UTC()
		session.EndedAt = &ended
	}
	return &session, nil
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	query := `
	INSERT INTO session (task_id, kind, planned_minutes, actual_minutes, started_at, ended_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + sessionColumns

	created, err := scanSession(r.db.QueryRow(ctx, query,
		session.TaskID,
		session.Kind.String(),
		session.PlannedMinutes,
		session.ActualMinutes,
		session.StartedAt.UTC(),
		session.EndedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == activeSessionIndex {
			return nil, entity.ErrActiveSessionExists
		}
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return created, nil
}

func (r *SessionRepository) GetBySessionId(ctx context.Context, sessionId int) (*entity.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM session WHERE id = $1`

	session, err := scanSession(r.db.QueryRow(ctx, query, sessionId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session %d: %w", sessionId, err)
	}
	return session, nil
}

func (r *SessionRepository) GetActiveByTaskId(ctx context.Context, taskId int) (*entity.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM session WHERE task_id = $1 AND ended_at IS NULL LIMIT 1`

	session, err := scanSession(r.db.QueryRow(ctx, query, taskId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select active session for task %d: %w", taskId, err)
	}
	return session, nil
}

// Complete - compare-and-swap по ended_at IS NULL
func (r *SessionRepository) Complete(ctx context.Context, id int, endedAt time.Time, actualMinutes *int) (*entity.Session, error) {
	query := `
	UPDATE session
	SET ended_at = $1, actual_minutes = $2
	WHERE id = $3 AND ended_at IS NULL
	RETURNING ` + sessionColumns

	session, err := scanSession(r.db.QueryRow(ctx, query, endedAt.UTC(), actualMinutes, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("complete session %d: %w", id, err)
	}
	return session, nil
}

// List - сессии по полуинтервалу started_at, от новых к старым
func (r *SessionRepository) List(ctx context.Context, filter entity.SessionFilter) ([]entity.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM session WHERE TRUE`
	args := []interface{}{}

	if filter.From != nil {
		args = append(args, filter.From.UTC())
		query += fmt.Sprintf(" AND started_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, filter.To.UTC())
		query += fmt.Sprintf(" AND started_at < $%d", len(args))
	}

	query += " ORDER BY started_at DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]entity.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}
