// Package fontconf analyzes and rewrites the two fontconfig-style documents
// the game reads its font substitutions from.
//
// The documents are treated as opaque text. Rules are located with anchored
// patterns and only the family name inside a matched rule is replaced, so
// every byte outside a rewritten <string> payload survives untouched.
package fontconf

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// EditMode is how a rule's replacement family combines with the matched one.
type EditMode int

const (
	// EditModeAssign replaces the matched family outright.
	EditModeAssign EditMode = iota
	// EditModeAppend adds the family after the matched one in the fallback list.
	EditModeAppend
	// EditModePrepend adds the family before the matched one in the fallback list.
	EditModePrepend
)

func (m EditMode) String() string {
	switch m {
	case EditModeAssign:
		return "Assign"
	case EditModeAppend:
		return "Append"
	case EditModePrepend:
		return "Prepend"
	default:
		return "Unknown"
	}
}

// ParseEditMode parses an edit mode name, case-insensitively.
func ParseEditMode(s string) (EditMode, error) {
	switch strings.ToLower(s) {
	case "assign":
		return EditModeAssign, nil
	case "append":
		return EditModeAppend, nil
	case "prepend":
		return EditModePrepend, nil
	default:
		return EditModeAssign, fmt.Errorf("unknown edit mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m EditMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *EditMode) UnmarshalText(b []byte) error {
	parsed, err := ParseEditMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scope names the document a rule lives in.
type Scope int

const (
	// ScopeGlobalReplacement is 42-repl-global.conf.
	ScopeGlobalReplacement Scope = iota
	// ScopeFontsCatalog is fonts.conf.
	ScopeFontsCatalog
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobalReplacement:
		return "GlobalReplacement"
	case ScopeFontsCatalog:
		return "FontsCatalog"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FontRule is a single family substitution directive.
type FontRule struct {
	SourceFamily string   `json:"family"`
	Mode         EditMode `json:"mode"`
	Scope        Scope    `json:"scope"`
}

// Eligible reports whether the rule may ever be rewritten.
func (r FontRule) Eligible() bool {
	return !IsBuiltinFamily(r.SourceFamily)
}

// FontFilePattern is a <fontpattern> entry of the fonts catalog.
type FontFilePattern struct {
	Pattern  string `json:"pattern"`
	IsCustom bool   `json:"custom"`
}

// builtinFamilies are the game's shipped typeface variants. Rules targeting
// them are never rewritten.
var builtinFamilies = map[string]struct{}{
	"Stratum2":                   {},
	"Stratum2 Bold":              {},
	"Stratum2 Regular":           {},
	"Stratum2 Italic":            {},
	"Stratum2 Bold Italic":       {},
	"Stratum2 Light":             {},
	"Stratum2 Medium":            {},
	"Stratum2 Black":             {},
	"Stratum2 Thin":              {},
	"Stratum2 ExtraLight":        {},
	"Stratum2 SemiBold":          {},
	"Stratum2 ExtraBold":         {},
	"Stratum2 Heavy":             {},
	"Stratum2 Condensed":         {},
	"Stratum2 Bold Condensed":    {},
	"Stratum2 Regular Monodigit": {},
	"Stratum2 Bold Monodigit":    {},
}

// IsBuiltinFamily reports whether name is on the built-in family denylist.
func IsBuiltinFamily(name string) bool {
	_, ok := builtinFamilies[name]
	return ok
}

// markupChars cannot be stored in a <string> or <fontpattern> payload: the
// scanners stop at '<' and '&' starts an entity.
const markupChars = "<>&"

// ValidateName reports whether name can be written into a document as a
// family or file name and found again by the next analysis.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is empty")
	}
	if i := strings.IndexAny(name, markupChars); i >= 0 {
		return fmt.Errorf("name %q contains %q, which is not allowed in font documents", name, name[i])
	}
	return nil
}

// systemPatterns are generic <fontpattern> placeholders shipped with the game.
var systemPatterns = map[string]struct{}{
	".uifont":          {},
	"Arial":            {},
	"notosans":         {},
	"notoserif":        {},
	"notomono-regular": {},
	".ttf":             {},
	".otf":             {},
}

// Font file extensions recognized in <fontpattern> entries.
const (
	ExtTTF = ".ttf"
	ExtOTF = ".otf"
)

// isCustomFilePattern reports whether p names a concrete font file rather
// than a built-in placeholder.
func isCustomFilePattern(p string) bool {
	if _, ok := systemPatterns[p]; ok {
		return false
	}
	lower := strings.ToLower(p)
	return strings.HasSuffix(lower, ExtTTF) || strings.HasSuffix(lower, ExtOTF)
}

// Patterns match a family edit and capture (prefix, family, suffix). Only
// the family group is ever replaced.
var (
	assignPattern  = regexp.MustCompile(`(<edit name="family" mode="assign">\s*<string>)([^<]+)(</string>)`)
	prependPattern = regexp.MustCompile(`(<edit name="family" mode="prepend" binding="strong">\s*<string>)([^<]+)(</string>)`)
	appendPattern  = regexp.MustCompile(`(<edit name="family" mode="append" binding="strong">\s*<string>)([^<]+)(</string>)`)

	fontPatternPattern = regexp.MustCompile(`(<fontpattern>)([^<]+)(</fontpattern>)`)
)

func modePattern(m EditMode) *regexp.Regexp {
	switch m {
	case EditModeAppend:
		return appendPattern
	case EditModePrepend:
		return prependPattern
	default:
		return assignPattern
	}
}

// scopeModes lists the edit modes scanned in each document.
func scopeModes(s Scope) []EditMode {
	if s == ScopeFontsCatalog {
		return []EditMode{EditModeAppend}
	}
	return []EditMode{EditModeAssign, EditModePrepend}
}
