//go:build unix

package fsguard

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isSharingViolation reports errors raised for busy files. EPERM and EACCES
// already match fs.ErrPermission.
func isSharingViolation(err error) bool {
	return errors.Is(err, unix.ETXTBSY)
}
