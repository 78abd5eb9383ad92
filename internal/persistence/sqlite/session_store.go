package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/dorm-duty-bot/internal/persistence"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	chat_id        TEXT PRIMARY KEY,
	state          TEXT NOT NULL,
	corpus         TEXT NOT NULL DEFAULT '',
	floor          TEXT NOT NULL DEFAULT '',
	num_rooms      INTEGER NOT NULL DEFAULT 0,
	requester_room INTEGER NOT NULL DEFAULT 0,
	requester_name TEXT NOT NULL DEFAULT '',
	horizon_days   INTEGER NOT NULL DEFAULT 0,
	artifact_id    TEXT NOT NULL DEFAULT '',
	artifact_path  TEXT NOT NULL DEFAULT '',
	artifact_name  TEXT NOT NULL DEFAULT '',
	generated_at   TEXT,
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);
`

// SessionStore implements persistence.SessionStore on SQLite. The whole
// session record is written in one statement, which keeps get/put atomic per
// chat as the store contract requires.
type SessionStore struct {
	pool *ConnectionPool
	now  func() time.Time
}

// NewSessionStore creates a SQLite session store.
func NewSessionStore(pool *ConnectionPool, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{pool: pool, now: now}
}

// Migrate creates the sessions table when it does not exist yet.
func (s *SessionStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply sessions schema: %w", mapSQLiteError(err))
	}
	return nil
}

// Get loads the session for a chat.
func (s *SessionStore) Get(ctx context.Context, chatID string) (persistence.Session, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}

	query := `
		SELECT chat_id, state, corpus, floor, num_rooms, requester_room,
		       requester_name, horizon_days, artifact_id, artifact_path,
		       artifact_name, generated_at, created_at, updated_at
		FROM sessions
		WHERE chat_id = ?
	`

	var session persistence.Session
	var generatedAt sql.NullString
	var createdAtStr, updatedAtStr string

	err := s.pool.db.QueryRowContext(ctx, query, chatID).Scan(
		&session.ChatID,
		&session.State,
		&session.Corpus,
		&session.Floor,
		&session.NumRooms,
		&session.RequesterRoom,
		&session.RequesterName,
		&session.HorizonDays,
		&session.ArtifactID,
		&session.ArtifactPath,
		&session.ArtifactName,
		&generatedAt,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Session{}, persistence.ErrNotFound
		}
		return persistence.Session{}, mapSQLiteError(err)
	}

	if generatedAt.Valid {
		parsed, err := time.Parse(time.RFC3339, generatedAt.String)
		if err != nil {
			return persistence.Session{}, fmt.Errorf("failed to parse generated_at: %w", err)
		}
		session.GeneratedAt = &parsed
	}
	if session.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.Session{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if session.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.Session{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return session, nil
}

// Put writes the whole session record, inserting or replacing in one
// statement.
func (s *SessionStore) Put(ctx context.Context, session persistence.Session) error {
	session.ChatID = strings.TrimSpace(session.ChatID)
	if session.ChatID == "" || session.State == "" {
		return persistence.ErrConstraintViolation
	}

	now := s.now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	var generatedAt sql.NullString
	if session.GeneratedAt != nil {
		generatedAt.String = session.GeneratedAt.UTC().Format(time.RFC3339)
		generatedAt.Valid = true
	}

	query := `
		INSERT INTO sessions (chat_id, state, corpus, floor, num_rooms, requester_room,
		                      requester_name, horizon_days, artifact_id, artifact_path,
		                      artifact_name, generated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			state = excluded.state,
			corpus = excluded.corpus,
			floor = excluded.floor,
			num_rooms = excluded.num_rooms,
			requester_room = excluded.requester_room,
			requester_name = excluded.requester_name,
			horizon_days = excluded.horizon_days,
			artifact_id = excluded.artifact_id,
			artifact_path = excluded.artifact_path,
			artifact_name = excluded.artifact_name,
			generated_at = excluded.generated_at,
			updated_at = excluded.updated_at
	`

	_, err := s.pool.db.ExecContext(ctx, query,
		session.ChatID,
		session.State,
		session.Corpus,
		session.Floor,
		session.NumRooms,
		session.RequesterRoom,
		session.RequesterName,
		session.HorizonDays,
		session.ArtifactID,
		session.ArtifactPath,
		session.ArtifactName,
		generatedAt,
		session.CreatedAt.UTC().Format(time.RFC3339),
		session.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return mapSQLiteError(err)
	}
	return nil
}

// Delete removes the session for a chat. Deleting an absent session is not
// an error.
func (s *SessionStore) Delete(ctx context.Context, chatID string) error {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return nil
	}
	if _, err := s.pool.db.ExecContext(ctx, `DELETE FROM sessions WHERE chat_id = ?`, chatID); err != nil {
		return mapSQLiteError(err)
	}
	return nil
}
