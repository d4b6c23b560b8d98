//go:build !unix && !windows

package fsguard

func isSharingViolation(error) bool { return false }
