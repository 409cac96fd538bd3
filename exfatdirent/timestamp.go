package exfatdirent

import (
	"time"
)

// timestamp32 is the packed exFAT DOS-style date+time field (Double Date
// and Time, §7.4.5-7), adapted from dsoprea-go-exfat's ExfatTimestamp bit
// layout.
type timestamp32 uint32

func (t timestamp32) second() int { return int(t&31) * 2 }
func (t timestamp32) minute() int { return int(t&2016) >> 5 }
func (t timestamp32) hour() int   { return int(t&63488) >> 11 }
func (t timestamp32) day() int    { return int(t&2031616) >> 16 }
func (t timestamp32) month() int  { return int(t&31457280) >> 21 }
func (t timestamp32) year() int   { return 1980 + int(t&4261412864)>>25 }

// utcOffsetLocation decodes the exFAT UTC-offset byte (§7.4.5/7.4.6/7.4.7)
// into a fixed time.Location. Bit 7 marks the offset as valid; the low 7
// bits are a two's-complement count of 15-minute intervals (spec §4.6:
// off = -((tz ^ 0x7F) + 1) * 15min for tz >= 0x40, tz * 15min otherwise).
func utcOffsetLocation(offsetByte uint8) *time.Location {
	const validBit = 0x80
	const lowBitsMask = 0x7F

	if offsetByte&validBit == 0 {
		return time.UTC
	}

	off7 := int(offsetByte & lowBitsMask)
	if off7 >= 0x40 {
		off7 -= 0x80
	}
	seconds := off7 * 15 * 60
	if seconds == 0 {
		return time.UTC
	}
	return time.FixedZone("", seconds)
}

// decodeTimestamp combines a packed timestamp, its 10ms-tenths refinement,
// and its UTC-offset byte into a time.Time, per spec §4.6.
func decodeTimestamp(raw timestamp32, tenMsIncrement uint8, utcOffsetByte uint8) time.Time {
	y, mo, d := raw.year(), raw.month(), raw.day()
	if mo < 1 || mo > 12 || d < 1 {
		return time.Unix(0, 0).UTC()
	}

	nanos := int(tenMsIncrement) * 10 * 1_000_000
	loc := utcOffsetLocation(utcOffsetByte)
	return time.Date(y, time.Month(mo), d, raw.hour(), raw.minute(), raw.second(), nanos, loc)
}
