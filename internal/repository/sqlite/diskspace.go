//go:build unix

package sqlite

import (
	"golang.org/x/sys/unix"

	"pomotrack/internal/errors"
)

// CheckFreeSpace verifies that the filesystem holding dir has at least
// minFreeBytes of free space before the database is opened. A write into a
// full filesystem can corrupt the journal, so refuse up front.
func CheckFreeSpace(dir string, minFreeBytes uint64) error {
	if minFreeBytes == 0 {
		return nil
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return errors.NewStorageError(dir, "cannot stat filesystem", err)
	}

	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		return errors.NewStorageError(dir, "insufficient free space", nil).
			WithContext("free_bytes", free).
			WithContext("required_bytes", minFreeBytes)
	}

	return nil
}
