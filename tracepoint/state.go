// Package tracepoint implements the user-mode producer half of the
// EventHeader format: locating the kernel's user_events data file,
// registering/unregistering a tracepoint, and performing the single
// vectored write that emits one event.
//
// TracepointState is address-stable once registered: the kernel records
// the address of its enable_status word and writes to it directly, so a
// TracepointState must be allocated once (heap or package-level var) and
// never moved or copied while registered. Unregister before the storage
// backing it is reclaimed.
package tracepoint

import "sync/atomic"

const (
	// unregisteredWriteIndex, busyWriteIndex, and highestValidWriteIndex
	// are the three write_index sentinels from spec.md §3.6: the top two
	// 32-bit values are reserved, everything below them is a kernel-
	// assigned slot.
	unregisteredWriteIndex uint32 = ^uint32(0)
	busyWriteIndex         uint32 = ^uint32(0) - 1
	highestValidWriteIndex uint32 = ^uint32(0) - 2
)

// Common errno values returned by TracepointState methods regardless of
// platform. These are the Linux numeric values; Register/Unregister/Write
// never need to translate them because the kernel ioctl/write path (when
// present) returns the same numbers directly from errno.
const (
	errEBADF    = 9
	errEBUSY    = 16
	errEINVAL   = 22
	errEALREADY = 114
)

// TracepointState is one tracepoint's registration and enable state:
// enableStatus is written by the kernel (nonzero means at least one
// consumer has enabled the event) and writeIndex tracks the
// Unregistered/Busy/Registered state machine from spec.md §3.6.
type TracepointState struct {
	enableStatus atomic.Uint32
	writeIndex   atomic.Uint32
}

// New returns an unregistered TracepointState. initialEnableStatus is
// normally 0: an unregistered tracepoint is never considered enabled, so
// callers outside of tests should always pass 0.
func New(initialEnableStatus uint32) *TracepointState {
	ts := &TracepointState{}
	ts.enableStatus.Store(initialEnableStatus)
	ts.writeIndex.Store(unregisteredWriteIndex)
	return ts
}

// Enabled reports whether the kernel has marked this tracepoint enabled.
// False before the first successful Register and immediately after any
// Unregister.
func (ts *TracepointState) Enabled() bool {
	return ts.enableStatus.Load() != 0
}

// writable reports whether Write/WriteWithHeaders should attempt I/O:
// enabled and holding a kernel-assigned write_index.
func (ts *TracepointState) writable() (uint32, bool) {
	enableStatus := ts.enableStatus.Load()
	writeIndex := ts.writeIndex.Load()
	if enableStatus == 0 || writeIndex > highestValidWriteIndex {
		return 0, false
	}
	return writeIndex, true
}
