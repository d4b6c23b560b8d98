package output

import (
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontconf"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontswap"
)

const arrowPrefix = "->"

// WriteAnalysis writes a human-readable breakdown of what the documents
// currently substitute: every family rule by document, every file pattern,
// and which of them a subsequent apply would retarget.
func WriteAnalysis(w io.Writer, s fontswap.Status) error {
	fmt.Fprintf(w, "Game root:        %s (%s layout)\n", s.GameRoot, s.Layout)
	fmt.Fprintf(w, "Installed family: %s\n", orNone(s.InstalledFamily))
	fmt.Fprintf(w, "Library file:     %s\n", orNone(s.LibraryFile))
	fmt.Fprintf(w, "Documents locked: %t\n", s.DocumentsLocked)
	if s.FirstInstallPending {
		fmt.Fprintln(w, "First install:    pending (run `fontswap install`)")
	}

	for _, scope := range []fontconf.Scope{fontconf.ScopeGlobalReplacement, fontconf.ScopeFontsCatalog} {
		fmt.Fprintf(w, "\n%s rules:\n", scope)
		n := 0
		for _, r := range s.Rules {
			if r.Scope != scope {
				continue
			}
			n++
			marker := "  "
			note := "built-in, kept"
			if r.Eligible() {
				marker = arrowPrefix
				note = "retargeted on apply"
			}
			fmt.Fprintf(w, "  %s %-8s %-32q %s\n", marker, r.Mode, r.SourceFamily, note)
		}
		if n == 0 {
			fmt.Fprintln(w, "  (none)")
		}
	}

	fmt.Fprintln(w, "\nFile patterns:")
	if len(s.Patterns) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, p := range s.Patterns {
		marker, note := "  ", "system"
		if p.IsCustom {
			marker, note = arrowPrefix, "custom, replaced on apply"
		}
		fmt.Fprintf(w, "  %s %-32q %s\n", marker, p.Pattern, note)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
