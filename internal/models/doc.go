// Package models defines the core domain models for tzgroups.
//
// # Models
//
//   - Person: a name, an IANA timezone and a week of hourly availability
//     declared in that timezone
//   - Group: one proposed team and the UTC hours it should meet at
//
// # Tokens
//
// A Person travels between callers as an opaque token, the standard base64
// encoding of
//
//	name|timezone|w0|w1|w2|w3|w4|w5
//
// where w0..w5 are the six 32-bit availability words in decimal. Word k bit b
// is hour 32k+b of the week, hour 0 being Monday 00:00 local time. Bits past
// hour 167 are always zero. Encode and DecodePerson are exact inverses.
//
// # Design Principles
//
//  1. Availability is stored in the person's own zone and converted to UTC
//     only when an instant is known, so daylight saving is applied at use.
//  2. Groups reference people by token, never by pointer.
//  3. Malformed input surfaces as an error wrapping ErrMalformedToken,
//     ErrInvalidName, availability.ErrInvalidAvailability or
//     availability.ErrUnknownTimezone; nothing panics.
package models
