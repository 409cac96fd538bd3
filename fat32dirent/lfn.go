package fat32dirent

import (
	"golang.org/x/text/encoding/unicode"
)

// lfnDecoder decodes UTF-16LE name fragments, replacing invalid code units
// rather than failing the whole directory listing over one bad name.
var lfnDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// lfnUnits concatenates an LFN fragment's three name pieces into its raw
// UTF-16 code unit sequence (13 units per fragment), stopping at the first
// NUL or 0xFFFF padding unit.
func lfnUnits(l LFN) []uint16 {
	units := make([]uint16, 0, 13)
	units = append(units, l.Name1[:]...)
	units = append(units, l.Name2[:]...)
	units = append(units, l.Name3[:]...)

	for i, u := range units {
		if u == 0x0000 || u == 0xFFFF {
			return units[:i]
		}
	}
	return units
}

// utf16ToString decodes a sequence of UTF-16LE code units into a Go string,
// using golang.org/x/text rather than a hand-rolled surrogate-pair loop.
func utf16ToString(units []uint16) string {
	raw := make([]byte, 2*len(units))
	for i, u := range units {
		raw[2*i] = byte(u)
		raw[2*i+1] = byte(u >> 8)
	}
	out, err := lfnDecoder.Bytes(raw)
	if err != nil {
		return string(out)
	}
	return string(out)
}

// lfnRun is an ordinal-ordered accumulation of LFN fragments belonging to
// one name, reduced together with the SFN that terminates the run (spec
// §4.5).
type lfnRun struct {
	fragments []LFN // stored in descending-ordinal (on-disk) order
}

func newLFNRun() *lfnRun {
	return &lfnRun{fragments: make([]LFN, 0, 4)}
}

// Add appends a fragment read in on-disk order (highest ordinal first).
// Sequence validation (strictly descending, last-entry bit present on the
// first fragment seen) happens here so a corrupt run is caught as soon as
// it diverges.
func (r *lfnRun) Add(l LFN) bool {
	ordinal := l.Ordinal &^ lfnLastFlag
	isLast := l.Ordinal&lfnLastFlag != 0

	if len(r.fragments) == 0 {
		if !isLast || ordinal == 0 {
			return false
		}
		r.fragments = append(r.fragments, l)
		return true
	}

	prevOrdinal := r.fragments[len(r.fragments)-1].Ordinal &^ lfnLastFlag
	if ordinal != prevOrdinal-1 {
		return false
	}
	r.fragments = append(r.fragments, l)
	return true
}

// Checksum returns the checksum byte all fragments in the run must agree
// on, valid only once the run is non-empty.
func (r *lfnRun) Checksum() uint8 {
	return r.fragments[0].Checksum
}

// Name reassembles the full long name from the accumulated fragments,
// which are stored highest-ordinal-first and must be read in the reverse
// (ordinal-ascending) order to reconstruct the name, per spec §4.5.
func (r *lfnRun) Name() string {
	var units []uint16
	for i := len(r.fragments) - 1; i >= 0; i-- {
		units = append(units, lfnUnits(r.fragments[i])...)
	}
	return utf16ToString(units)
}

// Valid reports whether every fragment's checksum in the accumulated run
// matches the terminating SFN's packed name, per spec §4.5.
func (r *lfnRun) Valid(sfn SFN) bool {
	if len(r.fragments) == 0 {
		return false
	}
	want := Checksum(sfn.NameRaw)
	for _, f := range r.fragments {
		if f.Checksum != want {
			return false
		}
	}
	return true
}
