// Package fserr defines the error taxonomy shared by the font swapping core.
// Every error carries a Kind, the path it concerns (if any), the underlying
// cause, and a message suitable for showing to an end user.
package fserr

import (
	"errors"
	"fmt"
)

// Kind classifies a font swapping failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindPathNotSet
	KindPermissionDenied
	KindBackupMissing
	KindFontMetadataUnreadable
	KindWriteFailed
)

func (k Kind) String() string {
	switch k {
	case KindPathNotSet:
		return "PathNotSet"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindBackupMissing:
		return "BackupMissing"
	case KindFontMetadataUnreadable:
		return "FontMetadataUnreadable"
	case KindWriteFailed:
		return "WriteFailed"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is checks. Only the Kind is compared.
var (
	ErrPathNotSet             = &Error{Kind: KindPathNotSet}
	ErrPermissionDenied       = &Error{Kind: KindPermissionDenied}
	ErrBackupMissing          = &Error{Kind: KindBackupMissing}
	ErrFontMetadataUnreadable = &Error{Kind: KindFontMetadataUnreadable}
	ErrWriteFailed            = &Error{Kind: KindWriteFailed}
)

// Error is a classified font swapping failure.
type Error struct {
	Kind Kind
	Path string
	Err  error
	msg  string
}

func (e *Error) Error() string {
	var s string
	switch {
	case e.Path != "" && e.Err != nil:
		s = fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	case e.Path != "":
		s = fmt.Sprintf("%s: %s", e.Kind, e.Path)
	case e.Err != nil:
		s = fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		s = e.Kind.String()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// UserMessage returns a human-readable explanation of the failure.
func (e *Error) UserMessage() string {
	if e.msg != "" {
		return e.msg
	}
	return e.Error()
}

// PathNotSet reports a missing or nonexistent game install root.
func PathNotSet(root string) error {
	msg := "game install path is not set; run `fontswap install --game-path <dir>` first"
	if root != "" {
		msg = fmt.Sprintf("game install path %q does not exist", root)
	}
	return &Error{Kind: KindPathNotSet, Path: root, msg: msg}
}

// PermissionDenied reports that the OS refused to change or delete path.
func PermissionDenied(path string, err error) error {
	return &Error{
		Kind: KindPermissionDenied,
		Path: path,
		Err:  err,
		msg:  fmt.Sprintf("cannot modify %s: make sure the game is closed and try running as administrator", path),
	}
}

// BackupMissing reports that a restore source is absent.
func BackupMissing(path string) error {
	return &Error{
		Kind: KindBackupMissing,
		Path: path,
		msg:  fmt.Sprintf("backup %s not found; defaults cannot be restored without reinstalling", path),
	}
}

// FontMetadataUnreadable reports a font file without a parseable family name.
func FontMetadataUnreadable(path string, err error) error {
	return &Error{
		Kind: KindFontMetadataUnreadable,
		Path: path,
		Err:  err,
		msg:  fmt.Sprintf("could not read font metadata from %s", path),
	}
}

// WriteFailed reports an I/O failure while reading or writing path.
func WriteFailed(path string, err error) error {
	return &Error{
		Kind: KindWriteFailed,
		Path: path,
		Err:  err,
		msg:  fmt.Sprintf("failed to update %s: %v", path, err),
	}
}

// UserMessage returns the user-facing message of the first *Error in err's
// chain, or err.Error() when there is none.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return err.Error()
}
