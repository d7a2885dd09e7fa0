package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmynk/tzgroups/internal/availability"
)

var (
	// ErrInvalidName is returned for names that cannot survive encoding.
	ErrInvalidName = errors.New("invalid name")

	// ErrMalformedToken is returned when a token is not valid base64, not
	// UTF-8, or does not have the expected fields.
	ErrMalformedToken = errors.New("malformed token")
)

const (
	tokenSeparator = "|"
	// tokenFields is name, timezone, then one field per storage word.
	tokenFields = 2 + availability.WordCount
)

// Person is one roster entry: who they are, the zone they think in, and when
// they are free during a week expressed in that zone.
//
// Person is immutable; all accessors return copies.
type Person struct {
	name string
	zone availability.Zone
	week availability.Week
}

// NewPerson validates and builds a Person. availabilityBits must be exactly
// availability.HoursPerWeek characters of '0' and '1', starting Monday 00:00
// in timezone.
func NewPerson(name, timezone, availabilityBits string) (Person, error) {
	if err := validateName(name); err != nil {
		return Person{}, err
	}
	zone, err := availability.LoadZone(timezone)
	if err != nil {
		return Person{}, err
	}
	week, err := availability.ParseWeek(availabilityBits)
	if err != nil {
		return Person{}, err
	}
	return Person{name: name, zone: zone, week: week}, nil
}

func validateName(name string) error {
	if strings.Contains(name, tokenSeparator) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, tokenSeparator)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: not UTF-8", ErrInvalidName)
	}
	return nil
}

// Name is the display name.
func (p Person) Name() string {
	return p.name
}

// Timezone is the zone key the availability was declared in.
func (p Person) Timezone() string {
	return p.zone.Name()
}

// Week returns availability in the person's own zone.
func (p Person) Week() availability.Week {
	return p.week
}

// Equal reports whether both records describe the same person and schedule.
func (p Person) Equal(other Person) bool {
	return p.name == other.name && p.zone.Name() == other.zone.Name() && p.week == other.week
}

// WeekIn returns availability as seen from zone at the given instant.
func (p Person) WeekIn(zone availability.Zone, at time.Time) availability.Week {
	return p.week.Rotate(availability.OffsetHours(p.zone, zone, at))
}

// UTC returns availability normalized to UTC at the given instant.
func (p Person) UTC(at time.Time) availability.Week {
	return p.WeekIn(availability.UTC, at)
}

// AvailabilityIn renders availability as seen from timezone right now.
func (p Person) AvailabilityIn(timezone string) (string, error) {
	return p.AvailabilityInAt(timezone, time.Now())
}

// AvailabilityInAt renders availability as seen from timezone at the given
// instant.
func (p Person) AvailabilityInAt(timezone string, at time.Time) (string, error) {
	zone, err := availability.LoadZone(timezone)
	if err != nil {
		return "", err
	}
	return p.WeekIn(zone, at).String(), nil
}

// Encode serializes the person into a portable token:
// base64(name|timezone|w0|w1|w2|w3|w4|w5), words in decimal.
func (p Person) Encode() string {
	var sb strings.Builder
	sb.WriteString(p.name)
	sb.WriteString(tokenSeparator)
	sb.WriteString(p.zone.Name())
	for _, word := range p.week.Words() {
		sb.WriteString(tokenSeparator)
		sb.WriteString(strconv.FormatUint(uint64(word), 10))
	}
	return base64.StdEncoding.EncodeToString([]byte(sb.String()))
}

// DecodePerson reverses Encode.
func DecodePerson(token string) (Person, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Person{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if !utf8.Valid(raw) {
		return Person{}, fmt.Errorf("%w: payload is not UTF-8", ErrMalformedToken)
	}

	fields := strings.Split(string(raw), tokenSeparator)
	if len(fields) != tokenFields {
		return Person{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedToken, tokenFields, len(fields))
	}

	words := make([]uint32, 0, availability.WordCount)
	for i, field := range fields[2:] {
		word, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return Person{}, fmt.Errorf("%w: word %d: %v", ErrMalformedToken, i, err)
		}
		words = append(words, uint32(word))
	}
	week, err := availability.WeekFromWords(words)
	if err != nil {
		return Person{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	zone, err := availability.LoadZone(fields[1])
	if err != nil {
		return Person{}, err
	}

	return Person{name: fields[0], zone: zone, week: week}, nil
}
