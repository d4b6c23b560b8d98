package update

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var versionRegex = regexp.MustCompile(
	`^[vV]?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([^+]*))?(?:\+.*)?$`,
)

// Version is a release version. Build metadata is accepted and ignored.
type Version struct {
	Major      int64
	Minor      int64
	Patch      int64
	PreRelease string
}

// ParseVersion parses release tags such as "v1.2", "1.2.3" or "V2.0.0-beta.1".
func ParseVersion(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, fmt.Errorf("invalid version format: %q", s)
	}

	var v Version
	for i, dst := range []*int64{&v.Major, &v.Minor, &v.Patch} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q: %w", m[i+1], err)
		}
		*dst = n
	}
	v.PreRelease = m[4]
	return v, nil
}

// Compare returns a negative value, zero, or a positive value when v is
// older than, equal to, or newer than other. A release is newer than any of
// its pre-releases.
func (v Version) Compare(other Version) int {
	for _, d := range []int64{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch} {
		switch {
		case d > 0:
			return 1
		case d < 0:
			return -1
		}
	}
	return comparePreRelease(v.PreRelease, other.PreRelease)
}

// comparePreRelease orders pre-release labels by name, case-insensitively,
// then by trailing number ("beta.2" < "beta.10").
func comparePreRelease(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}

	aName, aNum := splitPreRelease(a)
	bName, bNum := splitPreRelease(b)
	if c := strings.Compare(strings.ToLower(aName), strings.ToLower(bName)); c != 0 {
		return c
	}
	switch {
	case aNum < bNum:
		return -1
	case aNum > bNum:
		return 1
	default:
		return 0
	}
}

func splitPreRelease(s string) (string, int64) {
	if i := strings.LastIndex(s, "."); i >= 0 {
		if n, err := strconv.ParseInt(s[i+1:], 10, 64); err == nil {
			return s[:i], n
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return "", n
	}
	return s, 0
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.PreRelease != "" {
		s += "-" + v.PreRelease
	}
	return s
}
