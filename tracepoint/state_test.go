package tracepoint

import "testing"

func TestNewIsUnregisteredAndDisabled(t *testing.T) {
	ts := New(0)
	if ts.Enabled() {
		t.Fatal("new TracepointState reported Enabled()")
	}
	if _, ok := ts.writable(); ok {
		t.Fatal("new TracepointState reported writable()")
	}
}

func TestEnabledTracksEnableStatus(t *testing.T) {
	ts := New(1)
	if !ts.Enabled() {
		t.Fatal("TracepointState constructed with nonzero enable status reported disabled")
	}
}

func TestUnregisterAlreadyUnregistered(t *testing.T) {
	ts := New(0)
	if got := ts.Unregister(); got != errEALREADY {
		t.Fatalf("Unregister() on a never-registered tracepoint = %d, want EALREADY(%d)", got, errEALREADY)
	}
	if ts.writeIndex.Load() != unregisteredWriteIndex {
		t.Fatalf("writeIndex after Unregister = %#x, want Unregistered", ts.writeIndex.Load())
	}
}

func TestUnregisterWhileBusyReturnsEBusy(t *testing.T) {
	ts := New(0)
	ts.writeIndex.Store(busyWriteIndex)
	if got := ts.Unregister(); got != errEBUSY {
		t.Fatalf("Unregister() while busy = %d, want EBUSY(%d)", got, errEBUSY)
	}
	if ts.writeIndex.Load() != busyWriteIndex {
		t.Fatal("Unregister() while busy must leave write_index at Busy, not clear it")
	}
}

func TestWriteDisabledReturnsEBadf(t *testing.T) {
	ts := New(0)
	if got := ts.Write([][]byte{nil}); got != errEBADF {
		t.Fatalf("Write() on a disabled tracepoint = %d, want EBADF(%d)", got, errEBADF)
	}
}

func TestWriteEnabledButUnregisteredReturnsEBadf(t *testing.T) {
	// enable_status nonzero (as if the kernel enabled a filter on a
	// tracepoint that is, for whatever reason, not actually registered)
	// still must not attempt I/O: write_index is out of the valid range.
	ts := New(1)
	if got := ts.Write([][]byte{nil}); got != errEBADF {
		t.Fatalf("Write() with no valid write_index = %d, want EBADF(%d)", got, errEBADF)
	}
}
