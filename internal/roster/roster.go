package roster

import (
	"errors"
	"fmt"
)

// ErrInvalidRosterSize indicates the roster was constructed with a non-positive room count.
var ErrInvalidRosterSize = errors.New("roster: number of rooms must be positive")

// Roster describes the ordered set of rooms on one dormitory floor that take
// part in the duty rotation. Room identity is always the (corpus, floor,
// index) triple; labels are derived on demand and never stored.
type Roster struct {
	Corpus   string
	Floor    string
	NumRooms int

	// IndexPrefix, when non-empty, is inserted before single-digit indices in
	// labels, e.g. prefix "0" turns 3D.2.4 into 3D.2.04. Some floors number
	// their doors that way.
	IndexPrefix string
}

// New validates the room count and returns a roster value.
func New(corpus, floor string, numRooms int) (Roster, error) {
	if numRooms <= 0 {
		return Roster{}, ErrInvalidRosterSize
	}
	return Roster{Corpus: corpus, Floor: floor, NumRooms: numRooms}, nil
}

// Label renders the room identifier for a 1-based index.
func (r Roster) Label(index int) string {
	if r.IndexPrefix != "" && index < 10 {
		return fmt.Sprintf("%s.%s.%s%d", r.Corpus, r.Floor, r.IndexPrefix, index)
	}
	return fmt.Sprintf("%s.%s.%d", r.Corpus, r.Floor, index)
}

// Next returns the cyclic successor of a 1-based index, wrapping NumRooms
// back to 1.
func (r Roster) Next(index int) int {
	return index%r.NumRooms + 1
}

// Contains reports whether the 1-based index falls inside the roster.
func (r Roster) Contains(index int) bool {
	return index >= 1 && index <= r.NumRooms
}
