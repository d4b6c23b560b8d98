//go:build windows

package fsguard

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isSharingViolation reports errors Windows raises while another process
// (typically the running game) holds the file open.
func isSharingViolation(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION) ||
		errors.Is(err, windows.ERROR_LOCK_VIOLATION) ||
		errors.Is(err, windows.ERROR_ACCESS_DENIED)
}
