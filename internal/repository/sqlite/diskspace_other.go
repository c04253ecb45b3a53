//go:build !unix

package sqlite

// CheckFreeSpace is a no-op on platforms without Statfs.
func CheckFreeSpace(dir string, minFreeBytes uint64) error {
	return nil
}
