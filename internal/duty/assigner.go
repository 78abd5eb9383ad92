package duty

import (
	"errors"
	"time"

	"github.com/example/dorm-duty-bot/internal/holiday"
	"github.com/example/dorm-duty-bot/internal/roster"
)

// StartDateLayout is the wire format for schedule start dates (dd.mm.yyyy).
const StartDateLayout = "02.01.2006"

// ErrInvalidHorizon indicates the requested horizon is not a positive day count.
var ErrInvalidHorizon = errors.New("duty: horizon must be a positive number of days")

// ErrInvalidStartDate indicates the start date could not be parsed as dd.mm.yyyy.
var ErrInvalidStartDate = errors.New("duty: start date must use the dd.mm.yyyy format")

// Row is one line of the generated duty schedule. Exactly one row is emitted
// per calendar day. Holiday rows carry the holiday name instead of a room
// label and leave Resident empty. Checkin is reserved for annotation after
// the document is printed and is always empty at generation time.
type Row struct {
	Date        time.Time
	Room        string
	Resident    string
	Checkin     string
	IsHoliday   bool
	HolidayName string
}

// DayOfWeek returns the English weekday name for the row's date.
func (r Row) DayOfWeek() string {
	return r.Date.Weekday().String()
}

// Params bundles the inputs of a schedule assignment.
type Params struct {
	Roster        roster.Roster
	RequesterRoom int
	RequesterName string
	StartDate     time.Time
	HorizonDays   int
	// Holidays is optional; when nil every day receives a room assignment.
	Holidays holiday.Oracle
}

// Assign expands the horizon into schedule rows.
//
// The room cursor starts at index 1 on the start date and advances one cyclic
// step per non-holiday day. A day the oracle reports as a holiday consumes a
// calendar day but not a rotation step, so the room order stays contiguous
// across holidays. The requester's name is attached to the row whose cursor
// equals their declared room index.
//
// The expansion is a pure function of its inputs; calling it twice with the
// same parameters yields identical rows.
func Assign(p Params) ([]Row, error) {
	if p.HorizonDays <= 0 {
		return nil, ErrInvalidHorizon
	}
	if p.Roster.NumRooms <= 0 {
		return nil, roster.ErrInvalidRosterSize
	}

	rows := make([]Row, 0, p.HorizonDays)
	cursor := 1
	for offset := 0; offset < p.HorizonDays; offset++ {
		date := p.StartDate.AddDate(0, 0, offset)

		if p.Holidays != nil {
			if name, ok := p.Holidays.Holiday(date); ok {
				rows = append(rows, Row{Date: date, IsHoliday: true, HolidayName: name})
				continue
			}
		}

		row := Row{Date: date, Room: p.Roster.Label(cursor)}
		if cursor == p.RequesterRoom {
			row.Resident = p.RequesterName
		}
		rows = append(rows, row)
		cursor = p.Roster.Next(cursor)
	}

	return rows, nil
}

// ParseStartDate parses a dd.mm.yyyy date string.
func ParseStartDate(value string) (time.Time, error) {
	parsed, err := time.Parse(StartDateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidStartDate
	}
	return parsed, nil
}
