package output

import (
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontswap"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/update"
)

// StatusVariables flattens a status report into key=value pairs.
func StatusVariables(s fontswap.Status) map[string]string {
	return map[string]string{
		"GameRoot":            s.GameRoot,
		"Layout":              s.Layout,
		"InstalledFamily":     s.InstalledFamily,
		"Families":            strings.Join(s.Families, ","),
		"FilePatterns":        strings.Join(s.FilePatterns, ","),
		"LibraryFile":         s.LibraryFile,
		"DocumentsLocked":     strconv.FormatBool(s.DocumentsLocked),
		"UIFontParked":        strconv.FormatBool(s.UIFontParked),
		"FirstInstallPending": strconv.FormatBool(s.FirstInstallPending),
	}
}

// ApplyVariables flattens an apply result into key=value pairs.
func ApplyVariables(r fontswap.ApplyResult) map[string]string {
	return map[string]string{
		"Family":           r.Family,
		"FileName":         r.FileName,
		"LibraryPath":      r.LibraryPath,
		"GlobalRules":      strconv.Itoa(r.Counts.Global),
		"CatalogRules":     strconv.Itoa(r.Counts.Catalog),
		"FilePatterns":     strconv.Itoa(r.Counts.FilePatterns),
		"ExtensionSwapped": strconv.FormatBool(r.Counts.ExtensionSwapped),
		"RemovedFonts":     strings.Join(r.RemovedFonts, ","),
	}
}

// RestoreVariables flattens a restore result into key=value pairs.
func RestoreVariables(r fontswap.RestoreResult) map[string]string {
	return map[string]string{
		"Restored":       strings.Join(r.Restored, ","),
		"UIFontRestored": strconv.FormatBool(r.UIFontRestored),
		"RemovedFonts":   strings.Join(r.RemovedFonts, ","),
	}
}

// UpdateVariables flattens an update check into key=value pairs.
func UpdateVariables(r update.Result) map[string]string {
	return map[string]string{
		"Current":     r.Current,
		"Latest":      r.Latest.Tag,
		"URL":         r.Latest.URL,
		"NeedsUpdate": strconv.FormatBool(r.NeedsUpdate),
	}
}
