package fontconf

import (
	"strings"
	"testing"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/templates"

	"github.com/stretchr/testify/require"
)

func globalDoc(blocks ...string) string {
	return "<?xml version='1.0'?>\n<fontconfig>\n" + strings.Join(blocks, "\n") + "\n</fontconfig>\n"
}

func assignBlock(test, target string) string {
	return "\t<match target=\"font\">\n\t\t<test name=\"family\">\n\t\t\t<string>" + test +
		"</string>\n\t\t</test>\n\t\t<edit name=\"family\" mode=\"assign\">\n\t\t\t<string>" + target +
		"</string>\n\t\t</edit>\n\t</match>"
}

func prependBlock(test, target string) string {
	return "\t<match target=\"pattern\">\n\t\t<test name=\"family\">\n\t\t\t<string>" + test +
		"</string>\n\t\t</test>\n\t\t<edit name=\"family\" mode=\"prepend\" binding=\"strong\">\n\t\t\t<string>" + target +
		"</string>\n\t\t</edit>\n\t</match>"
}

func appendBlock(test, target string) string {
	return "\t<match>\n\t\t<test name=\"family\">\n\t\t\t<string>" + test +
		"</string>\n\t\t</test>\n\t\t<edit name=\"family\" mode=\"append\" binding=\"strong\">\n\t\t\t<string>" + target +
		"</string>\n\t\t</edit>\n\t</match>"
}

func fontPattern(p string) string {
	return "\t<fontpattern>" + p + "</fontpattern>"
}

func stateOf(families []string, files ...string) InstalledFontState {
	s := InstalledFontState{CurrentFamilyNames: map[string]struct{}{}, CurrentFilePatterns: files}
	for _, f := range families {
		s.CurrentFamilyNames[f] = struct{}{}
	}
	return s
}

func TestEditMode_ParseAndString(t *testing.T) {
	for _, m := range []EditMode{EditModeAssign, EditModeAppend, EditModePrepend} {
		parsed, err := ParseEditMode(strings.ToUpper(m.String()))
		require.NoError(t, err)
		require.Equal(t, m, parsed)
	}
	_, err := ParseEditMode("replace")
	require.Error(t, err)
	require.Equal(t, "Unknown", EditMode(9).String())
}

func TestEditMode_TextRoundTrip(t *testing.T) {
	b, err := EditModePrepend.MarshalText()
	require.NoError(t, err)

	var m EditMode
	require.NoError(t, m.UnmarshalText(b))
	require.Equal(t, EditModePrepend, m)
	require.Error(t, m.UnmarshalText([]byte("bogus")))
}

func TestScope_String(t *testing.T) {
	require.Equal(t, "GlobalReplacement", ScopeGlobalReplacement.String())
	require.Equal(t, "FontsCatalog", ScopeFontsCatalog.String())
}

func TestIsBuiltinFamily(t *testing.T) {
	require.True(t, IsBuiltinFamily("Stratum2"))
	require.True(t, IsBuiltinFamily("Stratum2 Bold Monodigit"))
	require.False(t, IsBuiltinFamily("stratum2"))
	require.False(t, IsBuiltinFamily("Arial"))
	require.Len(t, builtinFamilies, 17)
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"MyFont", false},
		{"Noto Sans CJK JP", false},
		{"my-font_2.otf", false},
		{"", true},
		{"   ", true},
		{"A<B", true},
		{"A>B", true},
		{"Fish & Chips", true},
		{"A<B & C", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRewrite_MarkupInNameLeavesDocumentsRetargetable(t *testing.T) {
	global := globalDoc(assignBlock("Stratum2", "DefaultFamily"))
	catalog := globalDoc(fontPattern("old_font.ttf"), appendBlock("Stratum2", "DefaultFamily"))

	tests := []struct {
		name     string
		family   string
		fileName string
	}{
		{"less-than in family", "A<B", "ab.ttf"},
		{"ampersand in family", "A<B & C", "abc.ttf"},
		{"ampersand in file name", "MyFont", "a&b.ttf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(global, catalog)

			newGlobal, n := RewriteGlobal(global, a.State, tt.family)
			newCatalog, c := RewriteCatalog(catalog, a.State, tt.family, tt.fileName)
			if ValidateName(tt.family) != nil {
				require.Zero(t, n)
				require.Equal(t, global, newGlobal)
			}
			require.Equal(t, Counts{}, c)
			require.Equal(t, catalog, newCatalog)

			// The rules still carry a name the scanners can find, so the
			// next rewrite retargets them.
			a = Analyze(newGlobal, newCatalog)
			require.NotEmpty(t, a.State.FamilyNames())
			_, n = RewriteGlobal(newGlobal, a.State, "Other Font")
			require.Equal(t, 1, n)
			_, c = RewriteCatalog(newCatalog, a.State, "Other Font", "other.ttf")
			require.Equal(t, 1, c.Catalog)
			require.Equal(t, 1, c.FilePatterns)
		})
	}
}

func TestScanRules_DocumentOrder(t *testing.T) {
	doc := globalDoc(
		prependBlock("A", "First"),
		assignBlock("B", "Second"),
		prependBlock("C", "Third"),
	)

	rules := ScanRules(doc, ScopeGlobalReplacement)
	require.Equal(t, []FontRule{
		{SourceFamily: "First", Mode: EditModePrepend, Scope: ScopeGlobalReplacement},
		{SourceFamily: "Second", Mode: EditModeAssign, Scope: ScopeGlobalReplacement},
		{SourceFamily: "Third", Mode: EditModePrepend, Scope: ScopeGlobalReplacement},
	}, rules)

	require.Empty(t, ScanRules(doc, ScopeFontsCatalog))
}

func TestScanFilePatterns_ClassifiesPlaceholders(t *testing.T) {
	doc := globalDoc(
		fontPattern("Arial"),
		fontPattern(".uifont"),
		fontPattern("FONTNAME"),
		fontPattern(".ttf"),
		fontPattern("custom.TTF"),
		fontPattern("other.otf"),
	)

	require.Equal(t, []FontFilePattern{
		{Pattern: "Arial"},
		{Pattern: ".uifont"},
		{Pattern: "FONTNAME"},
		{Pattern: ".ttf"},
		{Pattern: "custom.TTF", IsCustom: true},
		{Pattern: "other.otf", IsCustom: true},
	}, ScanFilePatterns(doc))
}

func TestAnalyze_UnionMinusDenylist(t *testing.T) {
	global := globalDoc(
		assignBlock("Stratum2", "DefaultFamily"),
		prependBlock("Stratum2", "Prepended"),
		assignBlock("Arial", "Stratum2 Bold"),
	)
	catalog := globalDoc(
		appendBlock("Stratum2 Bold Monodigit", "Stratum2"),
		appendBlock("Stratum2", "Appended"),
		fontPattern("old_font.ttf"),
		fontPattern("notosans"),
		fontPattern("old_font.ttf"),
	)

	a := Analyze(global, catalog)
	require.Equal(t, []string{"Appended", "DefaultFamily", "Prepended"}, a.State.FamilyNames())
	require.Equal(t, []string{"old_font.ttf", "old_font.ttf"}, a.State.CurrentFilePatterns)
	require.Len(t, a.Rules, 5)
	require.Equal(t, "DefaultFamily", a.InstalledFamily())
}

func TestAnalyze_EmptyDocuments(t *testing.T) {
	a := Analyze("", "")
	require.Empty(t, a.State.CurrentFamilyNames)
	require.Empty(t, a.State.CurrentFilePatterns)
	require.Equal(t, "", a.InstalledFamily())
}

func TestAnalysis_InstalledFamilySkipsBuiltin(t *testing.T) {
	a := Analyze(globalDoc(assignBlock("x", "Stratum2"), assignBlock("y", "Mine")), "")
	require.Equal(t, "Mine", a.InstalledFamily())
}

func TestRewriteGlobal_OnlyMatchingRulesChange(t *testing.T) {
	matching := []string{
		assignBlock("Stratum2", "Old"),
		prependBlock("Stratum2", "Old"),
		assignBlock("Arial", "Other Old"),
	}
	untouched := []string{
		assignBlock("Courier New", "Unknown Family"),
		assignBlock("Times New Roman", "Stratum2 Bold"),
		// Unusual whitespace must survive byte for byte.
		"\t<edit name=\"family\" mode=\"assign\">  \r\n   <string>Stratum2</string>   </edit>",
	}
	doc := globalDoc(append(append([]string{}, matching...), untouched...)...)
	state := stateOf([]string{"Old", "Other Old", "Stratum2 Bold", "Stratum2"})

	out, n := RewriteGlobal(doc, state, "MyFont")
	require.Equal(t, 3, n)

	for _, block := range untouched {
		require.Contains(t, out, block)
	}
	require.NotContains(t, out, "<string>Old</string>")
	require.NotContains(t, out, "<string>Other Old</string>")
	require.Equal(t, strings.Count(doc, "\n"), strings.Count(out, "\n"))

	expected := strings.NewReplacer(
		"<string>Old</string>\n\t\t</edit>", "<string>MyFont</string>\n\t\t</edit>",
		"<string>Other Old</string>\n\t\t</edit>", "<string>MyFont</string>\n\t\t</edit>",
	).Replace(doc)
	require.Equal(t, expected, out)
}

func TestRewriteGlobal_DenylistWinsOverState(t *testing.T) {
	doc := globalDoc(assignBlock("x", "Stratum2"), prependBlock("x", "Stratum2 Light"))
	state := stateOf([]string{"Stratum2", "Stratum2 Light"})

	out, n := RewriteGlobal(doc, state, "MyFont")
	require.Equal(t, 0, n)
	require.Equal(t, doc, out)
}

func TestRewriteGlobal_TestStringsAreNotTouched(t *testing.T) {
	doc := globalDoc(assignBlock("Old", "Old"))

	out, n := RewriteGlobal(doc, stateOf([]string{"Old"}), "MyFont")
	require.Equal(t, 1, n)
	require.Contains(t, out, "<test name=\"family\">\n\t\t\t<string>Old</string>")
	require.Contains(t, out, "mode=\"assign\">\n\t\t\t<string>MyFont</string>")
}

func TestRewrite_ConcreteScenario(t *testing.T) {
	global := globalDoc(assignBlock("Stratum2", "DefaultFamily"))
	catalog := globalDoc(
		fontPattern("old_font.ttf"),
		appendBlock("Stratum2", "DefaultFamily"),
	)
	a := Analyze(global, catalog)

	newGlobal, g := RewriteGlobal(global, a.State, "MyFont")
	newCatalog, c := RewriteCatalog(catalog, a.State, "MyFont", "myfont.ttf")

	require.Equal(t, 1, g)
	require.Equal(t, 1, c.Catalog)
	require.Equal(t, 1, c.FilePatterns)
	require.False(t, c.ExtensionSwapped)
	require.Equal(t, globalDoc(assignBlock("Stratum2", "MyFont")), newGlobal)
	require.Equal(t, globalDoc(fontPattern("myfont.ttf"), appendBlock("Stratum2", "MyFont")), newCatalog)
}

func TestRewriteCatalog_DuplicateFilePatternsCountOnce(t *testing.T) {
	catalog := globalDoc(fontPattern("a.ttf"), fontPattern("a.ttf"), fontPattern("b.otf"))
	a := Analyze("", catalog)

	out, c := RewriteCatalog(catalog, a.State, "MyFont", "new.ttf")
	require.Equal(t, 2, c.FilePatterns)
	require.Equal(t, 3, strings.Count(out, "<fontpattern>new.ttf</fontpattern>"))
}

func TestRewriteCatalog_FamilyNamePatterns(t *testing.T) {
	catalog := globalDoc(fontPattern("FONTNAME"), fontPattern("Arial"), appendBlock("Stratum2", "FONTNAME"))
	a := Analyze("", catalog)

	out, c := RewriteCatalog(catalog, a.State, "MyFont", "myfont.ttf")
	require.Equal(t, 2, c.Catalog)
	require.Contains(t, out, "<fontpattern>MyFont</fontpattern>")
	require.Contains(t, out, "<fontpattern>Arial</fontpattern>")
}

func TestRewriteCatalog_ExtensionSwap(t *testing.T) {
	tests := []struct {
		name    string
		current string
		newFile string
		want    string
		swapped bool
	}{
		{"ttf to otf", ".ttf", "myfont.otf", ".otf", true},
		{"otf to ttf", ".otf", "myfont.ttf", ".ttf", true},
		{"uppercase new extension", ".ttf", "MYFONT.OTF", ".otf", true},
		{"ttf unchanged", ".ttf", "myfont.ttf", ".ttf", false},
		{"otf unchanged", ".otf", "myfont.otf", ".otf", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := globalDoc(fontPattern(".uifont"), fontPattern(tt.current))

			out, c := RewriteCatalog(catalog, Analyze("", catalog).State, "MyFont", tt.newFile)
			require.Equal(t, tt.swapped, c.ExtensionSwapped)
			require.Equal(t, globalDoc(fontPattern(".uifont"), fontPattern(tt.want)), out)
		})
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	global := string(templates.MustRead(templates.Global))
	catalog := string(templates.MustRead(templates.Catalog))

	apply := func(g, c string) (string, string, Counts) {
		a := Analyze(g, c)
		ng, n := RewriteGlobal(g, a.State, "MyFont")
		nc, counts := RewriteCatalog(c, a.State, "MyFont", "myfont.otf")
		counts.Global = n
		return ng, nc, counts
	}

	g1, c1, first := apply(global, catalog)
	require.True(t, first.Changed())
	require.True(t, first.ExtensionSwapped)
	require.NotContains(t, g1, templates.PlaceholderFamily)
	require.NotContains(t, c1, templates.PlaceholderFamily)
	require.Contains(t, c1, "<fontpattern>myfont.otf</fontpattern>")
	require.Contains(t, c1, "<fontpattern>.otf</fontpattern>")
	// Built-in monodigit fallbacks keep pointing at the shipped family.
	require.Contains(t, c1, "mode=\"append\" binding=\"strong\">\n\t\t\t<string>Stratum2</string>")

	g2, c2, second := apply(g1, c1)
	require.Equal(t, Counts{}, second)
	require.Equal(t, g1, g2)
	require.Equal(t, c1, c2)
}

func TestRewrite_SwitchingFontsRetargetsPreviousFont(t *testing.T) {
	global := string(templates.MustRead(templates.Global))
	catalog := string(templates.MustRead(templates.Catalog))

	a := Analyze(global, catalog)
	global, _ = RewriteGlobal(global, a.State, "First")
	catalog, _ = RewriteCatalog(catalog, a.State, "First", "first.ttf")

	a = Analyze(global, catalog)
	require.Equal(t, []string{"First"}, a.State.FamilyNames())
	require.Equal(t, []string{"first.ttf"}, a.State.CurrentFilePatterns)

	global, n := RewriteGlobal(global, a.State, "Second")
	catalog, c := RewriteCatalog(catalog, a.State, "Second", "second.ttf")
	require.Positive(t, n)
	require.Equal(t, 1, c.FilePatterns)
	require.NotContains(t, global, "First")
	require.NotContains(t, catalog, "first.ttf")
}
