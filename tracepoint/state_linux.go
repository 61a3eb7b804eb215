//go:build linux

package tracepoint

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioc reproduces the kernel's _IOC() macro: pack direction/type/number/size
// into the ioctl request number. size is the kernel's expected argument
// size, which for DIAG_IOCSREG/DIAG_IOCSUNREG is the host pointer width,
// not sizeof(the packed struct) — copied exactly from the reference
// implementation's native ioctl bindings.
func ioc(dir, typ, nr, size uintptr) uintptr {
	const nrBits = 8
	const typeBits = 8
	const sizeBits = 14
	const nrShift = 0
	const typeShift = nrShift + nrBits
	const sizeShift = typeShift + typeBits
	const dirShift = sizeShift + sizeBits

	return dir<<dirShift | typ<<typeShift | nr<<nrShift | size<<sizeShift
}

const (
	iocWrite     = 1
	iocRead      = 2
	diagIOCMagic = uintptr('*')
)

var (
	diagIOCSReg   = ioc(iocWrite|iocRead, diagIOCMagic, 0, unsafe.Sizeof(uintptr(0)))
	diagIOCSUnreg = ioc(iocWrite, diagIOCMagic, 2, unsafe.Sizeof(uintptr(0)))
)

// userRegSize/userUnregSize are the tightly-packed byte sizes of the
// kernel's user_reg/user_unreg request structs (spec.md §6.1): the fields
// are hand-packed into a byte buffer rather than expressed as a Go struct
// because the kernel ABI is packed and a Go struct's natural alignment
// would insert padding a C compiler wouldn't.
const (
	userRegSize   = 4 + 1 + 1 + 2 + 8 + 8 + 4 // size, enable_bit, enable_size, flags, enable_addr, name_args, write_index
	userUnregSize = 4 + 1 + 1 + 2 + 8         // size, disable_bit, reserved1, reserved2, disable_addr
)

func putU32(b []byte, v uint32) { b[0] = byte(v); b[1] = byte(v >> 8); b[2] = byte(v >> 16); b[3] = byte(v >> 24) }
func putU64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// Register registers ts against the kernel with the given name-args
// string (spec.md §6.1's "TracepointName FieldTypeString") and zero
// flags. ts must not already be registered or mid-registration.
func (ts *TracepointState) Register(nameArgs string) int32 {
	return ts.RegisterWithFlags(nameArgs, 0)
}

// RegisterWithFlags is Register with an explicit user_reg flags word
// (normally 0; a flag such as USER_EVENT_REG_PERSIST is the only other
// documented use).
func (ts *TracepointState) RegisterWithFlags(nameArgs string, flags uint16) int32 {
	old := ts.writeIndex.Swap(busyWriteIndex)
	if old != unregisteredWriteIndex {
		panic("tracepoint: Register called on an already-registered or busy tracepoint")
	}

	var errno int32
	var newWriteIndex uint32

	fd := dataFile()
	if fd < 0 {
		errno = -fd
		newWriteIndex = unregisteredWriteIndex
	} else {
		nameArgsBytes := append([]byte(nameArgs), 0)

		buf := make([]byte, userRegSize)
		putU32(buf[0:4], uint32(userRegSize))
		buf[4] = 0 // enable_bit
		buf[5] = 4 // enable_size
		putU16(buf[6:8], flags)
		putU64(buf[8:16], uint64(uintptr(unsafe.Pointer(&ts.enableStatus))))
		putU64(buf[16:24], uint64(uintptr(unsafe.Pointer(&nameArgsBytes[0]))))
		putU32(buf[24:28], 0) // write_index, filled in by the kernel

		_, _, errnoVal := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), diagIOCSReg, uintptr(unsafe.Pointer(&buf[0])))
		runtime.KeepAlive(nameArgsBytes)
		if errnoVal != 0 {
			errno = int32(errnoVal)
			newWriteIndex = unregisteredWriteIndex
		} else {
			newWriteIndex = getU32(buf[24:28])
		}
	}

	ts.writeIndex.Store(newWriteIndex)
	return errno
}

// Unregister unregisters ts, returning 0 on success, EBUSY if another
// goroutine is concurrently registering/unregistering this same
// TracepointState, or EALREADY if it was already unregistered.
func (ts *TracepointState) Unregister() int32 {
	old := ts.writeIndex.Swap(busyWriteIndex)

	var errno int32
	switch old {
	case busyWriteIndex:
		return int32(unix.EBUSY)
	case unregisteredWriteIndex:
		errno = int32(unix.EALREADY)
	default:
		buf := make([]byte, userUnregSize)
		putU32(buf[0:4], uint32(userUnregSize))
		buf[4] = 0 // disable_bit
		buf[5] = 0 // reserved1
		putU16(buf[6:8], 0)
		putU64(buf[8:16], uint64(uintptr(unsafe.Pointer(&ts.enableStatus))))

		fd := dataFile()
		if fd >= 0 {
			_, _, errnoVal := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), diagIOCSUnreg, uintptr(unsafe.Pointer(&buf[0])))
			if errnoVal != 0 {
				errno = int32(errnoVal)
			}
		}
	}

	ts.writeIndex.Store(unregisteredWriteIndex)
	return errno
}

func putU16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func getU32(b []byte) uint32    { return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24 }

// Write sends data to the kernel in one vectored write. data[0] must be
// empty; it is overwritten with the 4-byte write_index header. Returns 0
// on success, EBADF if the tracepoint is disabled or unregistered
// (without performing any I/O), or a syscall errno.
func (ts *TracepointState) Write(data [][]byte) int32 {
	writeIndex, ok := ts.writable()
	if !ok {
		return errEBADF
	}

	var indexBytes [4]byte
	putU32(indexBytes[:], writeIndex)
	return ts.writev(data, indexBytes[:])
}

// WriteWithHeaders is Write, but the caller supplies a pre-built headers
// block (at least 4 bytes) instead of an empty data[0]; the first 4 bytes
// of headers are overwritten with the write_index.
func (ts *TracepointState) WriteWithHeaders(data [][]byte, headers []byte) int32 {
	writeIndex, ok := ts.writable()
	if !ok {
		return errEBADF
	}
	putU32(headers[0:4], writeIndex)
	return ts.writev(data, headers)
}

func (ts *TracepointState) writev(data [][]byte, headers []byte) int32 {
	data[0] = headers

	iovs := make([]unix.Iovec, len(data))
	for i, block := range data {
		if len(block) == 0 {
			continue
		}
		iovs[i].SetLen(len(block))
		iovs[i].Base = &block[0]
	}

	_, _, errno := unix.Syscall(unix.SYS_WRITEV, uintptr(dataFile()), uintptr(unsafe.Pointer(&iovs[0])), uintptr(len(iovs)))
	if errno != 0 {
		return int32(errno)
	}
	return 0
}
