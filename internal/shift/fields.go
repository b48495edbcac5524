package shift

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"edp-shifts/internal/models"
)

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "02-01-2006"
	TimestampLayout   = "2006-01-02 15:04:05"
)

var (
	ErrInvalidFields = errors.New("invalid shift fields")
	ErrNotFound      = errors.New("shift not found")
)

// Fields are the mutable columns of a shift.
type Fields struct {
	Date        time.Time
	Branch      string
	StaffName   string
	StaffNumber string
	MobilePhone string
	ShiftTiming models.ShiftTiming
}

// ParseDate reads a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidFields)
	}
	return d, nil
}

func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// Normalize trims text fields and pins Date to midnight UTC.
func (f Fields) Normalize() Fields {
	f.Branch = strings.TrimSpace(f.Branch)
	f.StaffName = strings.TrimSpace(f.StaffName)
	f.StaffNumber = strings.TrimSpace(f.StaffNumber)
	f.MobilePhone = strings.TrimSpace(f.MobilePhone)
	f.ShiftTiming = models.ShiftTiming(strings.TrimSpace(string(f.ShiftTiming)))
	f.Date = day(f.Date)
	return f
}

// Validate is the presence check applied before a shift is written.
func (f Fields) Validate() error {
	if f.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidFields)
	}
	var missing []string
	if f.Branch == "" {
		missing = append(missing, "branch")
	}
	if f.StaffName == "" {
		missing = append(missing, "staff_name")
	}
	if f.StaffNumber == "" {
		missing = append(missing, "staff_number")
	}
	if f.MobilePhone == "" {
		missing = append(missing, "mobile_phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidFields, strings.Join(missing, ", "))
	}
	if !f.ShiftTiming.Valid() {
		return fmt.Errorf("%w: unknown shift timing %q", ErrInvalidFields, f.ShiftTiming)
	}
	return nil
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
