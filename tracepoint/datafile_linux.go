//go:build linux

package tracepoint

import (
	"bufio"
	"os"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// dataFileNotAttempted is the sentinel meaning "discovery has not run yet"
// (-EAGAIN, matching the reference implementation's choice of a value
// vanishingly unlikely to be the real errno from a failed open). Once
// dataFileOrErrno holds any other value, that value is sticky for the life
// of the process: a failed discovery is never retried.
const dataFileNotAttempted int32 = -11

var dataFileOrErrno atomic.Int32

func init() {
	dataFileOrErrno.Store(dataFileNotAttempted)
}

// dataFile returns the process-wide user_events_data file descriptor,
// performing discovery on the first call. A negative return is -errno.
func dataFile() int32 {
	if v := dataFileOrErrno.Load(); v != dataFileNotAttempted {
		return v
	}
	return discoverDataFile()
}

// discoverDataFile implements spec.md §4.4: try the well-known tracefs
// path first, then fall back to parsing /proc/mounts (tracefs preferred
// over debugfs). Racing callers resolve to a single winner via
// compare-and-swap; losers close their own fd and adopt the winner's.
func discoverDataFile() int32 {
	newFD := openDataFileCandidate()

	if dataFileOrErrno.CompareAndSwap(dataFileNotAttempted, newFD) {
		return newFD
	}
	if newFD >= 0 {
		unix.Close(int(newFD))
	}
	return dataFileOrErrno.Load()
}

func openDataFileCandidate() int32 {
	if fd, err := unix.Open("/sys/kernel/tracing/user_events_data", unix.O_WRONLY, 0); err == nil {
		return int32(fd)
	}

	path, err := findUserEventsDataPath()
	if err != nil {
		logrus.WithError(err).Debug("tracepoint: user_events_data not found via /proc/mounts")
		return -int32(unix.ENOTSUP)
	}

	fd, err := unix.Open(path, unix.O_WRONLY, 0)
	if err != nil {
		errno, _ := err.(unix.Errno)
		logrus.WithError(err).WithField("path", path).Debug("tracepoint: open user_events_data failed")
		return -int32(errno)
	}
	return int32(fd)
}

// findUserEventsDataPath scans /proc/mounts for a tracefs or debugfs
// mount, preferring tracefs: a debugfs candidate is remembered but search
// continues in case a tracefs mount appears later in the file.
func findUserEventsDataPath() (string, error) {
	f, err := os.Open("/proc/mounts")
	if err != nil {
		return "", errors.Wrap(err, "tracepoint: open /proc/mounts")
	}
	defer f.Close()

	var debugfsPath string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mount, fs := fields[1], fields[2]
		switch fs {
		case "tracefs":
			return mount + "/user_events_data", nil
		case "debugfs":
			if debugfsPath == "" {
				debugfsPath = mount + "/tracing/user_events_data"
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrap(err, "tracepoint: scan /proc/mounts")
	}
	if debugfsPath == "" {
		return "", errors.New("tracepoint: no tracefs or debugfs mount in /proc/mounts")
	}
	return debugfsPath, nil
}
