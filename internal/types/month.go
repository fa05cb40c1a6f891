// Package types implements special types for the hearthbudget backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"
)

// Month is a month in a specific year.
//
// Budget and unallocated-income rows are keyed by Month, which stands in
// for the (month, year) pair of the relational schema.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The month is expected to be a string in YYYY-MM format.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := string(data)
	if value == `""` || value == "null" {
		return nil
	}

	t, err := time.Parse(`"2006-01"`, value)
	if err != nil {
		return err
	}

	*m = NewMonth(t.Year(), t.Month())
	return nil
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return NewMonth(t.Year(), t.Month()), nil
}

// Equal reports whether m and other represent the same month of the same year.
func (m Month) Equal(other Month) bool {
	return time.Time(m).Equal(time.Time(other))
}

// IsZero reports whether the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddMonths adds count months to the month, rolling the year as needed.
func (m Month) AddMonths(count int) Month {
	t := time.Time(m).AddDate(0, count, 0)
	return NewMonth(t.Year(), t.Month())
}

// Scan writes the value from the database.
func (m *Month) Scan(value any) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*m = Month(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	year, month, _ := time.Time(m).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}
