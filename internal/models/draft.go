// Package models defines the logbook draft record and the validation and
// normalization rules the portal enforces only implicitly. All functions are
// pure; failures are reported as *common.ValidationError naming the field
// and carrying the offending raw value.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dbarbosa/libanac/internal/common"
)

// Role is the on-board function code the portal accepts for a logbook entry.
type Role string

const (
	RoleSecondInCommand  Role = "02"
	RoleFlightInstructor Role = "03"
	RolePilotInCommand   Role = "06"
	RoleStudentPilot     Role = "07"
)

var roleNames = map[Role]string{
	RoleSecondInCommand:  "Second-in-command",
	RoleFlightInstructor: "Flight instructor",
	RolePilotInCommand:   "Pilot-in-command",
	RoleStudentPilot:     "Student pilot",
}

// maxRemarksLen is the portal's limit for the remarks field.
const maxRemarksLen = 4000

// Draft is an unconfirmed flight record pending submission. Optional fields
// are empty strings. Time fields accept "h:mm" or decimal "h.d" notation.
// A draft is built transiently per submission and never persisted.
type Draft struct {
	Date         string
	Landings     string
	Role         Role
	Registration string
	Departure    string
	Destination  string
	Remarks      string

	DayTime          string
	NightTime        string
	CrossCountryTime string
	InstrumentTime   string
	HoodTime         string
}

// Normalize validates every field and returns a copy with all values in the
// canonical form the portal expects. The first failing field aborts; no
// partially normalized draft is ever returned.
func (d Draft) Normalize() (Draft, error) {
	out := d
	var err error

	if out.Date, err = NormalizeDate(d.Date); err != nil {
		return Draft{}, err
	}
	if out.Landings, err = NormalizeLandings(d.Landings); err != nil {
		return Draft{}, err
	}
	if err = ValidateRole(d.Role); err != nil {
		return Draft{}, err
	}
	if out.Registration, err = NormalizeRegistration(d.Registration); err != nil {
		return Draft{}, err
	}
	if out.Departure, err = NormalizeAirport("departure airport", d.Departure); err != nil {
		return Draft{}, err
	}
	if out.Destination, err = NormalizeAirport("destination airport", d.Destination); err != nil {
		return Draft{}, err
	}
	if err = ValidateRemarks(d.Remarks); err != nil {
		return Draft{}, err
	}

	if d.DayTime == "" && d.NightTime == "" {
		return Draft{}, &common.ValidationError{Field: "flight time", Value: ""}
	}
	if d.InstrumentTime != "" && d.HoodTime != "" {
		return Draft{}, &common.ValidationError{
			Field: "instrument time",
			Value: d.InstrumentTime + " and hood " + d.HoodTime,
		}
	}

	if out.DayTime, err = NormalizeTime("day time", d.DayTime); err != nil {
		return Draft{}, err
	}
	if out.NightTime, err = NormalizeTime("night time", d.NightTime); err != nil {
		return Draft{}, err
	}
	if out.CrossCountryTime, err = NormalizeTime("cross-country time", d.CrossCountryTime); err != nil {
		return Draft{}, err
	}
	if out.InstrumentTime, err = NormalizeTime("instrument time", d.InstrumentTime); err != nil {
		return Draft{}, err
	}
	if out.HoodTime, err = NormalizeTime("hood time", d.HoodTime); err != nil {
		return Draft{}, err
	}

	return out, nil
}

// NormalizeDate parses a strict dd/mm/yyyy date, rejecting impossible
// calendar dates, and re-renders it zero-padded.
func NormalizeDate(s string) (string, error) {
	t, err := time.Parse("2/1/2006", s)
	if err != nil {
		return "", &common.ValidationError{Field: "date", Value: s}
	}
	return t.Format("02/01/2006"), nil
}

// NormalizeLandings coerces the landing count to an integer rendered as two
// zero-padded digits.
func NormalizeLandings(s string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return "", &common.ValidationError{Field: "landings", Value: s}
	}
	return fmt.Sprintf("%02d", n), nil
}

// ValidateRole accepts only the portal's closed set of on-board function
// codes.
func ValidateRole(r Role) error {
	if _, ok := roleNames[r]; !ok {
		return &common.ValidationError{Field: "role", Value: string(r)}
	}
	return nil
}

// RoleName returns the human-readable name of a role code, or "" for an
// unknown code.
func RoleName(r Role) string {
	return roleNames[r]
}

// NormalizeRegistration strips hyphens from an aircraft registration, which
// must then be exactly five characters.
func NormalizeRegistration(s string) (string, error) {
	reg := strings.ReplaceAll(s, "-", "")
	if len(reg) != 5 {
		return "", &common.ValidationError{Field: "registration", Value: s}
	}
	return reg, nil
}

// NormalizeAirport uppercases a four-letter ICAO airport code.
func NormalizeAirport(field, s string) (string, error) {
	code := strings.ToUpper(s)
	if len(code) != 4 {
		return "", &common.ValidationError{Field: field, Value: s}
	}
	return code, nil
}

// ValidateRemarks bounds the optional remarks field.
func ValidateRemarks(s string) error {
	if utf8.RuneCountInString(s) > maxRemarksLen {
		return &common.ValidationError{Field: "remarks", Value: s}
	}
	return nil
}

// NormalizeTime renders a flight time as HH:MM. Decimal notation counts
// tenths of an hour as 6-minute units, so "1.5" is 01:30; a comma works as
// the decimal separator. The empty string stays empty.
func NormalizeTime(field, s string) (string, error) {
	if s == "" {
		return "", nil
	}

	invalid := func() error {
		return &common.ValidationError{Field: field, Value: s}
	}

	v := strings.ReplaceAll(s, ",", ".")

	var hh, mm string
	switch {
	case strings.Contains(v, "."):
		parts := strings.SplitN(v, ".", 2)
		frac, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", invalid()
		}
		hh, mm = parts[0], strconv.Itoa(frac*6)
	case strings.Contains(v, ":"):
		parts := strings.SplitN(v, ":", 2)
		hh, mm = parts[0], parts[1]
	default:
		hh, mm = v, "0"
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return "", invalid()
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return "", invalid()
	}

	return fmt.Sprintf("%02d:%02d", h, m), nil
}
