package holiday

import "time"

// Oracle answers whether a calendar date is a public holiday and, if so,
// under which name. Implementations must be safe for concurrent use.
type Oracle interface {
	Holiday(date time.Time) (name string, ok bool)
}

// Calendar is a fixed-date oracle. Recurring entries match on month and day
// every year; dated entries match a single date (movable feasts must be
// registered per year).
type Calendar struct {
	recurring map[monthDay]string
	dated     map[string]string
}

type monthDay struct {
	month time.Month
	day   int
}

// NewCalendar returns an empty calendar.
func NewCalendar() *Calendar {
	return &Calendar{
		recurring: make(map[monthDay]string),
		dated:     make(map[string]string),
	}
}

// AddRecurring registers a holiday observed on the same month and day every year.
func (c *Calendar) AddRecurring(month time.Month, day int, name string) *Calendar {
	c.recurring[monthDay{month: month, day: day}] = name
	return c
}

// AddDate registers a holiday observed on one specific date.
func (c *Calendar) AddDate(date time.Time, name string) *Calendar {
	c.dated[dateKey(date)] = name
	return c
}

// Holiday implements Oracle.
func (c *Calendar) Holiday(date time.Time) (string, bool) {
	if c == nil {
		return "", false
	}
	if name, ok := c.dated[dateKey(date)]; ok {
		return name, true
	}
	name, ok := c.recurring[monthDay{month: date.Month(), day: date.Day()}]
	return name, ok
}

func dateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// Ukrainian returns the fixed-date public holidays of Ukraine. Movable
// church feasts are not computed here; add them per year with AddDate.
func Ukrainian() *Calendar {
	c := NewCalendar()
	c.AddRecurring(time.January, 1, "Новий рік")
	c.AddRecurring(time.March, 8, "Міжнародний жіночий день")
	c.AddRecurring(time.May, 1, "День праці")
	c.AddRecurring(time.May, 8, "День пам'яті та перемоги")
	c.AddRecurring(time.June, 28, "День Конституції України")
	c.AddRecurring(time.July, 15, "День Української Державності")
	c.AddRecurring(time.August, 24, "День Незалежності України")
	c.AddRecurring(time.October, 1, "День захисників і захисниць України")
	c.AddRecurring(time.December, 25, "Різдво Христове")
	return c
}
