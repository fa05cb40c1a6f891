package types

import (
	"database/sql"
	"database/sql/driver"
	"time"
)

// Date is a civil calendar date without a time component.
//
// Transaction dates and bill due dates are civil dates: a bill is due on a
// day, not at an instant. Date normalizes to midnight UTC so that equality
// and ordering are day-granular regardless of the wall clock that produced
// the value.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date on which a time occurs in that time's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// ParseDate parses a string in RFC3339 full-date format ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format("2006-01-02")
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The date is expected to be a string in YYYY-MM-DD format.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := string(data)
	if value == `""` || value == "null" {
		return nil
	}

	t, err := time.Parse(`"2006-01-02"`, value)
	if err != nil {
		return err
	}

	*d = DateOf(t)
	return nil
}

// Year returns the year of the date.
func (d Date) Year() int {
	return time.Time(d).Year()
}

// Month returns the month of the date.
func (d Date) Month() time.Month {
	return time.Time(d).Month()
}

// Day returns the day of the month of the date.
func (d Date) Day() int {
	return time.Time(d).Day()
}

// MonthOf returns the Month the date falls in.
func (d Date) MonthOf() Month {
	return NewMonth(d.Year(), d.Month())
}

// AddDays returns the date count days later.
func (d Date) AddDays(count int) Date {
	return Date(time.Time(d).AddDate(0, 0, count))
}

// Equal reports whether d and other represent the same calendar day.
func (d Date) Equal(other Date) bool {
	return time.Time(d).Equal(time.Time(other))
}

// After reports whether d is after other.
func (d Date) After(other Date) bool {
	return time.Time(d).After(time.Time(other))
}

// Before reports whether d is before other.
func (d Date) Before(other Date) bool {
	return time.Time(d).Before(time.Time(other))
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// DaysIn returns the number of days in the given month of the given year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Scan writes the value from the database.
func (d *Date) Scan(value any) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = DateOf(nullTime.Time.In(time.UTC))
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	year, month, day := time.Time(d).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}
