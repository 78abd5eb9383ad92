package persistence

import "context"

// SessionStore persists conversation sessions keyed by chat id.
//
// Implementations must make Get and Put atomic over the whole record so that
// two events for the same chat never interleave a read-modify-write. The
// dispatcher additionally serializes events per chat, but the store must not
// rely on that.
type SessionStore interface {
	Get(ctx context.Context, chatID string) (Session, error)
	Put(ctx context.Context, session Session) error
	Delete(ctx context.Context, chatID string) error
}
