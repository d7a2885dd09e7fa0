// Package availability holds the weekly free/busy bit set and the timezone
// arithmetic used to move it between zones.
package availability

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

const (
	// HoursPerDay is the number of hour slots in one day.
	HoursPerDay = 24
	// DaysPerWeek is the number of days in a week, Monday first.
	DaysPerWeek = 7
	// HoursPerWeek is the length of every availability profile.
	HoursPerWeek = HoursPerDay * DaysPerWeek

	// WordBits is the width of one storage word.
	WordBits = 32
	// WordCount is the number of storage words backing a Week. Tokens carry
	// exactly this many words, so changing it breaks every issued token.
	WordCount = (HoursPerWeek + WordBits - 1) / WordBits
)

// ErrInvalidAvailability is returned for availability input that is not
// exactly HoursPerWeek characters of '0' and '1', or for raw words with bits
// set past the end of the week.
var ErrInvalidAvailability = errors.New("invalid availability")

// Week is a 168-hour availability profile. Hour 0 is Monday 00:00 in the zone
// the profile is expressed in. Hour h lives in word h/32 at bit h%32.
//
// Week is a value type; copies are independent.
type Week [WordCount]uint32

// ParseWeek builds a Week from a string of HoursPerWeek '0'/'1' characters,
// where character i is hour i.
func ParseWeek(s string) (Week, error) {
	var w Week
	if len(s) != HoursPerWeek {
		return w, fmt.Errorf("%w: expected %d hours, got %d", ErrInvalidAvailability, HoursPerWeek, len(s))
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			w.Set(i, true)
		case '0':
		default:
			return Week{}, fmt.Errorf("%w: unexpected character %q at hour %d", ErrInvalidAvailability, s[i], i)
		}
	}
	return w, nil
}

// WeekFromWords rebuilds a Week from its raw storage words.
func WeekFromWords(words []uint32) (Week, error) {
	var w Week
	if len(words) != WordCount {
		return w, fmt.Errorf("%w: expected %d words, got %d", ErrInvalidAvailability, WordCount, len(words))
	}
	copy(w[:], words)
	if w[WordCount-1]&^tailMask != 0 {
		return Week{}, fmt.Errorf("%w: bits set past hour %d", ErrInvalidAvailability, HoursPerWeek-1)
	}
	return w, nil
}

// tailMask keeps the used bits of the last word.
const tailMask = uint32(1)<<(HoursPerWeek-(WordCount-1)*WordBits) - 1

// Words returns a copy of the raw storage words.
func (w Week) Words() []uint32 {
	out := make([]uint32, WordCount)
	copy(out, w[:])
	return out
}

// Has reports whether hour h is free. h must be in [0, HoursPerWeek).
func (w Week) Has(h int) bool {
	return w[h/WordBits]&(1<<(h%WordBits)) != 0
}

// Set marks hour h free or busy.
func (w *Week) Set(h int, free bool) {
	if free {
		w[h/WordBits] |= 1 << (h % WordBits)
	} else {
		w[h/WordBits] &^= 1 << (h % WordBits)
	}
}

// Rotate returns the week shifted circularly by offset hours. A positive
// offset rotates left (hour offset becomes hour 0), a negative one rotates
// right. Hours wrap across the Sunday/Monday boundary; nothing is dropped.
func (w Week) Rotate(offset int) Week {
	n := offset % HoursPerWeek
	if n < 0 {
		n += HoursPerWeek
	}
	if n == 0 {
		return w
	}
	var out Week
	for h := 0; h < HoursPerWeek; h++ {
		if w.Has((h + n) % HoursPerWeek) {
			out.Set(h, true)
		}
	}
	return out
}

// And returns the hours free in both weeks.
func (w Week) And(other Week) Week {
	var out Week
	for i := range w {
		out[i] = w[i] & other[i]
	}
	return out
}

// Count returns the number of free hours.
func (w Week) Count() int {
	n := 0
	for _, word := range w {
		n += bits.OnesCount32(word)
	}
	return n
}

// Hours lists the free hours in ascending order.
func (w Week) Hours() []int {
	hours := make([]int, 0, w.Count())
	for i, word := range w {
		for word != 0 {
			b := bits.TrailingZeros32(word)
			hours = append(hours, i*WordBits+b)
			word &= word - 1
		}
	}
	return hours
}

// String renders the week as HoursPerWeek '0'/'1' characters.
func (w Week) String() string {
	var sb strings.Builder
	sb.Grow(HoursPerWeek)
	for h := 0; h < HoursPerWeek; h++ {
		if w.Has(h) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
