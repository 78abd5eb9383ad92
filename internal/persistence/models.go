package persistence

import "time"

// Session is the whole per-conversation record: the collected schedule
// request fields, the machine state, and the reference to the last rendered
// artifact. It is read and written as one unit; partial updates are never
// persisted.
type Session struct {
	ChatID string
	State  string

	Corpus        string
	Floor         string
	NumRooms      int
	RequesterRoom int
	RequesterName string
	HorizonDays   int

	ArtifactID   string
	ArtifactPath string
	ArtifactName string
	GeneratedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasArtifact reports whether a rendered document is attached to the session.
func (s Session) HasArtifact() bool {
	return s.ArtifactPath != ""
}
