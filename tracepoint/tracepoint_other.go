//go:build !linux

package tracepoint

// On platforms without user_events support, Register is a no-op that
// leaves the tracepoint permanently disabled (write_index stays
// Unregistered): spec.md §4.4, "platforms without kernel support ... the
// call returns success with write_index = Unregistered". Write/Unregister
// following a no-op Register behave exactly as they would for a never-
// registered tracepoint, so no kernel or file-system access ever happens
// here.

// Register is a no-op stub: it always succeeds without contacting a
// kernel, leaving the tracepoint disabled.
func (ts *TracepointState) Register(nameArgs string) int32 {
	return ts.RegisterWithFlags(nameArgs, 0)
}

// RegisterWithFlags is the non-Linux stub for Register.
func (ts *TracepointState) RegisterWithFlags(nameArgs string, flags uint16) int32 {
	old := ts.writeIndex.Swap(unregisteredWriteIndex)
	if old != unregisteredWriteIndex {
		panic("tracepoint: Register called on an already-registered or busy tracepoint")
	}
	return 0
}

// Unregister is the non-Linux stub: it mirrors the Busy/Unregistered
// bookkeeping without any syscall, since Register never left Busy.
func (ts *TracepointState) Unregister() int32 {
	old := ts.writeIndex.Swap(busyWriteIndex)
	switch old {
	case busyWriteIndex:
		return errEBUSY
	case unregisteredWriteIndex:
		ts.writeIndex.Store(unregisteredWriteIndex)
		return errEALREADY
	default:
		ts.writeIndex.Store(unregisteredWriteIndex)
		return 0
	}
}

// Write always fails with EBADF: a tracepoint registered via the stub
// Register is never enabled, so there is nothing to send.
func (ts *TracepointState) Write(data [][]byte) int32 {
	return errEBADF
}

// WriteWithHeaders is the non-Linux stub for WriteWithHeaders.
func (ts *TracepointState) WriteWithHeaders(data [][]byte, headers []byte) int32 {
	return errEBADF
}
