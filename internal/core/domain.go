package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyReceiver       = errors.New("empty receiver")
	ErrEmptyClassification = errors.New("empty classification")
	ErrMissingDate         = errors.New("missing date")
)

type (
	// Payer is a single contribution toward a transaction, recorded during
	// normalization. Name and amount both come from free-form user input.
	Payer struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
	}

	// Transaction is the wire-level transaction record. Amount is the net
	// spend as a formatted string (possibly with thousands separators),
	// exactly as the backend stores it. PaidToMe, Payers and OriginalAmount
	// are only present once a transaction has been normalized.
	Transaction struct {
		Classification string    `json:"Classification"`
		Amount         string    `json:"Amount"`
		Receiver       string    `json:"Receiver"`
		Date           Timestamp `json:"Date"`
		PaidToMe       string    `json:"PaidToMe,omitempty"`
		Payers         []Payer   `json:"Payers,omitempty"`
		OriginalAmount string    `json:"OriginalAmount,omitempty"`
	}
)

// Validate checks a user-entered transaction before submission. Records
// returned by the backend are trusted and never re-validated.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Amount) == "" {
		return ErrInvalidAmount
	}
	if _, err := parseStrict(t.Amount); err != nil {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Receiver) == "" {
		return ErrEmptyReceiver
	}
	if strings.TrimSpace(t.Classification) == "" {
		return ErrEmptyClassification
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

const timestampLayout = "2006-01-02 15:04:05"

// Timestamp is a whole-second transaction time. The backend formats it as
// "2006-01-02 15:04:05"; ISO 8601 is accepted on decode for tolerance.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.Format(timestampLayout) + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("timestamp: empty value")
	}
	for _, layout := range []string{timestampLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", s)
}

// Day is a civil calendar date. Date-range boundaries and chart buckets are
// expressed as Days so no timezone shifting can happen at the API boundary.
// Truncation from timestamps always uses the UTC calendar day.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{Year: year, Month: month, Day: day}
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return Day{Year: u.Year(), Month: u.Month(), Day: u.Day()}
}

// Today returns the current UTC calendar day.
func Today() Day {
	return DayOf(time.Now())
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Day{}, fmt.Errorf("day: cannot parse %q", s)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Day) IsZero() bool {
	return d == Day{}
}

// Before reports whether d is an earlier calendar day than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}
