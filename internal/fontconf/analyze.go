package fontconf

import (
	"context"
	"os"
	"sort"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/logging"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/paths"
)

// InstalledFontState is what the documents currently substitute. It is
// recomputed from document text on every call and never cached.
type InstalledFontState struct {
	// CurrentFamilyNames holds the eligible family names found in either
	// document. It never contains a built-in family.
	CurrentFamilyNames map[string]struct{}
	// CurrentFilePatterns holds custom font file names in catalog scan order.
	// Duplicates are kept.
	CurrentFilePatterns []string
}

// HasFamily reports whether name is currently targeted for substitution.
func (s InstalledFontState) HasFamily(name string) bool {
	_, ok := s.CurrentFamilyNames[name]
	return ok
}

// FamilyNames returns the current family names sorted for display.
func (s InstalledFontState) FamilyNames() []string {
	out := make([]string, 0, len(s.CurrentFamilyNames))
	for name := range s.CurrentFamilyNames {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Analysis is the full result of scanning both documents.
type Analysis struct {
	State        InstalledFontState
	Rules        []FontRule
	FilePatterns []FontFilePattern
}

// InstalledFamily returns the family the game currently renders its UI
// with: the target of the first eligible assign rule, if any.
func (a Analysis) InstalledFamily() string {
	for _, r := range a.Rules {
		if r.Scope == ScopeGlobalReplacement && r.Mode == EditModeAssign && r.Eligible() {
			return r.SourceFamily
		}
	}
	return ""
}

// ScanRules returns every family edit rule of the given scope in document order.
func ScanRules(content string, scope Scope) []FontRule {
	type located struct {
		at   int
		rule FontRule
	}
	var found []located
	for _, mode := range scopeModes(scope) {
		for _, m := range modePattern(mode).FindAllStringSubmatchIndex(content, -1) {
			found = append(found, located{
				at:   m[4],
				rule: FontRule{SourceFamily: content[m[4]:m[5]], Mode: mode, Scope: scope},
			})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].at < found[j].at })

	rules := make([]FontRule, 0, len(found))
	for _, f := range found {
		rules = append(rules, f.rule)
	}
	return rules
}

// ScanFilePatterns returns every <fontpattern> entry in document order.
func ScanFilePatterns(content string) []FontFilePattern {
	var out []FontFilePattern
	for _, m := range fontPatternPattern.FindAllStringSubmatch(content, -1) {
		out = append(out, FontFilePattern{Pattern: m[2], IsCustom: isCustomFilePattern(m[2])})
	}
	return out
}

// Analyze computes the installed font state from the text of both documents.
// Either may be empty.
func Analyze(globalContent, catalogContent string) Analysis {
	var a Analysis
	a.Rules = append(ScanRules(globalContent, ScopeGlobalReplacement), ScanRules(catalogContent, ScopeFontsCatalog)...)
	a.FilePatterns = ScanFilePatterns(catalogContent)

	a.State.CurrentFamilyNames = make(map[string]struct{})
	for _, r := range a.Rules {
		if r.Eligible() {
			a.State.CurrentFamilyNames[r.SourceFamily] = struct{}{}
		}
	}
	for _, p := range a.FilePatterns {
		if p.IsCustom {
			a.State.CurrentFilePatterns = append(a.State.CurrentFilePatterns, p.Pattern)
		}
	}
	return a
}

// AnalyzeFiles reads both documents and analyzes them. A missing or
// unreadable document contributes nothing and is only reported as a warning.
func AnalyzeFiles(ctx context.Context, p paths.Paths) Analysis {
	log := logging.FromContext(ctx)

	read := func(path string) string {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not analyze document")
			return ""
		}
		return string(data)
	}

	a := Analyze(read(p.GlobalReplacement), read(p.FontsCatalog))
	log.Debug().
		Strs("families", a.State.FamilyNames()).
		Strs("files", a.State.CurrentFilePatterns).
		Msg("analyzed font documents")
	return a
}
