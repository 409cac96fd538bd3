package fat32dirent

// Reduced is one fully-resolved directory entry: a long name (if any LFN
// fragments preceded the SFN and validated) or the short name, paired with
// the SFN record carrying attributes/timestamps/cluster/size.
type Reduced struct {
	Name  string
	Short SFN
}

// StopReduction describes the end-of-directory sentinel; it is not an
// error. Reducer.Feed does not return it: Feed reports the sentinel
// through its done result.
type StopReduction struct{}

func (StopReduction) Error() string { return "end of directory" }

// Reducer accumulates LFN fragments across consecutive 32-byte records and
// emits one Reduced entry per terminating SFN, per spec §4.7. A Reducer is
// scoped to a single directory's full record stream: callers should feed it
// every record across every cluster in the directory's chain, in order,
// until either the stream is exhausted or Feed reports done=true.
type Reducer struct {
	run *lfnRun
}

// NewReducer returns an empty Reducer.
func NewReducer() *Reducer {
	return &Reducer{}
}

// Feed processes one 32-byte directory record. It returns (entry, ok, done):
// ok is true when entry is a freshly completed Reduced record; done is true
// once the end-of-directory sentinel has been seen, at which point the
// caller must stop feeding records for the rest of the directory (spec
// §4.7: the 0x00 sentinel terminates the whole listing, not just the
// current cluster).
func (red *Reducer) Feed(record []byte) (entry Reduced, ok bool, done bool) {
	if IsLFN(record) {
		l := DecodeLFN(record)
		if red.run == nil {
			red.run = newLFNRun()
		}
		if !red.run.Add(l) {
			// Malformed sequence: drop the accumulated run and fall back to
			// the SFN's own short name when the terminating entry arrives.
			red.run = nil
		}
		return Reduced{}, false, false
	}

	sfn := DecodeSFN(record)

	if IsEndMarker(sfn) {
		return Reduced{}, false, true
	}

	if IsDeleted(sfn) {
		red.run = nil
		return Reduced{}, false, false
	}

	if IsVolumeLabel(sfn) {
		red.run = nil
		return Reduced{}, false, false
	}

	name := ShortName(sfn)
	if red.run != nil && red.run.Valid(sfn) {
		name = red.run.Name()
	}
	red.run = nil

	return Reduced{Name: name, Short: sfn}, true, false
}
