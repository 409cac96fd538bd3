package errors

// Domain sentinel errors for the filesystem core. These are distinct from
// the syscall.Errno-carrying DriverError above: they describe a failure
// mode specific to FAT32/exFAT decoding, independent of how (or whether) it
// gets translated into an errno for the mount bridge.
const (
	// ErrGeometryInvalid means the boot sector / BPB failed validation
	// (§4.2). Fatal to mount.
	ErrGeometryInvalid = DiskoError("invalid or unsupported volume geometry")

	// ErrBadCluster means a FAT entry classified as Bad was encountered
	// mid-chain (§4.3). Fatal to the read in progress.
	ErrBadCluster = DiskoError("bad cluster encountered in chain")

	// ErrClusterOutOfRange means a cluster number fell outside
	// [2, cluster_count+1] where that is a logic error rather than a
	// recoverable out-of-range read (§4.3).
	ErrClusterOutOfRange = DiskoError("cluster number out of range")

	// ErrEntrySetCorrupt means a directory-entry-set reduction failed
	// validation (too few secondaries, wrong ordering, checksum mismatch,
	// LFN ordinal mismatch) (§7 class 3). Non-fatal: the caller drops the
	// set and continues the surrounding directory read.
	ErrEntrySetCorrupt = DiskoError("directory entry set failed validation")

	// ErrUnsupportedFormat means the boot sector didn't match either
	// FAT32 or exFAT signatures.
	ErrUnsupportedFormat = DiskoError("unrecognized on-disk format")

	// ErrTruncatedRecord means a directory record buffer was shorter than
	// the fixed 32-byte record size (§7 class 2). Fatal within the
	// current ListDirectory call.
	ErrTruncatedRecord = DiskoError("truncated directory entry record")
)
