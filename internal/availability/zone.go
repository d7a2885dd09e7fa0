package availability

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host's tz database
)

// ErrUnknownTimezone is returned for names that are not timezone database keys.
var ErrUnknownTimezone = errors.New("unknown timezone")

// Zone is a validated timezone database entry.
type Zone struct {
	name string
	loc  *time.Location
}

// UTC is the zone all strategy scoring happens in.
var UTC = Zone{name: "UTC", loc: time.UTC}

var zoneCache sync.Map // name -> Zone

// LoadZone validates name against the timezone database. Results are cached,
// so repeated lookups of the same name share one *time.Location.
func LoadZone(name string) (Zone, error) {
	if z, ok := zoneCache.Load(name); ok {
		return z.(Zone), nil
	}
	// "" and "Local" are accepted by time.LoadLocation but are not keys.
	if name == "" || name == "Local" {
		return Zone{}, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	z := Zone{name: name, loc: loc}
	actual, _ := zoneCache.LoadOrStore(name, z)
	return actual.(Zone), nil
}

// Name returns the database key, e.g. "America/Los_Angeles".
func (z Zone) Name() string {
	return z.name
}

// IsZero reports whether z was never loaded.
func (z Zone) IsZero() bool {
	return z.loc == nil
}

// OffsetHours returns the zone's UTC offset at the given instant in whole
// hours. Fractional-hour offsets are truncated toward zero.
func (z Zone) OffsetHours(at time.Time) int {
	if z.loc == nil {
		return 0
	}
	_, seconds := at.In(z.loc).Zone()
	return seconds / 3600
}

// OffsetHours returns how many hours from is ahead of to at the given instant.
// Both offsets are taken at the same instant so daylight saving stays
// consistent. Pass the result to Week.Rotate to view a week declared in from
// as seen from to.
func OffsetHours(from, to Zone, at time.Time) int {
	return from.OffsetHours(at) - to.OffsetHours(at)
}

var zoneinfoDirs = []string{
	"/usr/share/zoneinfo/",
	"/usr/share/lib/zoneinfo/",
	"/usr/lib/locale/TZ/",
	"/etc/zoneinfo/",
}

var (
	timezonesOnce sync.Once
	timezones     []string
)

// Timezones lists every supported timezone key, sorted. The host zoneinfo
// tree is used when present; otherwise a built-in list of whole-hour zones.
func Timezones() []string {
	timezonesOnce.Do(func() {
		for _, dir := range zoneinfoDirs {
			if names := scanZoneinfo(dir); len(names) > 0 {
				timezones = names
				break
			}
		}
		if len(timezones) == 0 {
			timezones = WholeHourZones()
		}
	})
	return append([]string(nil), timezones...)
}

// WholeHourZones is a small sorted list of zones whose offsets are always a
// whole number of hours.
func WholeHourZones() []string {
	zones := append([]string(nil), fallbackZones...)
	sort.Strings(zones)
	return zones
}

func scanZoneinfo(root string) []string {
	if _, err := os.Stat(root); err != nil {
		return nil
	}
	var names []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel := strings.TrimPrefix(path, root)
		if d.IsDir() {
			// posix/ and right/ duplicate the main tree with other leap-second rules.
			if rel == "posix" || rel == "right" {
				return filepath.SkipDir
			}
			return nil
		}
		if !isZoneKey(rel) {
			return nil
		}
		if _, err := LoadZone(rel); err == nil {
			names = append(names, rel)
		}
		return nil
	})
	sort.Strings(names)
	return names
}

func isZoneKey(rel string) bool {
	if rel == "" || strings.ContainsAny(rel, ".") {
		return false
	}
	switch rel {
	case "Factory", "localtime", "posixrules", "leapseconds", "tzdata.zi", "leap-seconds.list":
		return false
	}
	first := rel[0]
	return first >= 'A' && first <= 'Z'
}

var fallbackZones = []string{
	"UTC",
	"Africa/Abidjan",
	"Africa/Accra",
	"Africa/Algiers",
	"Africa/Cairo",
	"Africa/Johannesburg",
	"Africa/Lagos",
	"Africa/Nairobi",
	"America/Anchorage",
	"America/Boise",
	"America/Argentina/Buenos_Aires",
	"America/Chicago",
	"America/Denver",
	"America/Halifax",
	"America/Los_Angeles",
	"America/Mexico_City",
	"America/New_York",
	"America/Phoenix",
	"America/Sao_Paulo",
	"America/Toronto",
	"Asia/Bangkok",
	"Asia/Dubai",
	"Asia/Hong_Kong",
	"Asia/Hovd",
	"Asia/Jakarta",
	"Asia/Seoul",
	"Asia/Shanghai",
	"Asia/Singapore",
	"Asia/Tokyo",
	"Atlantic/Azores",
	"Australia/Brisbane",
	"Europe/Berlin",
	"Europe/Istanbul",
	"Europe/London",
	"Europe/Madrid",
	"Europe/Moscow",
	"Europe/Paris",
	"Europe/Vilnius",
	"Pacific/Auckland",
	"Pacific/Honolulu",
}
