package ot

import (
	"errors"
	"fmt"
)

// ErrFontFormat is wrapped by all errors of Parse caused by malformed font data.
var ErrFontFormat = errors.New("malformed sfnt font")

// ErrorSeverity classifies problems found while parsing a font.
type ErrorSeverity int

// Severity levels. A critical error makes Parse fail, all others are
// recorded with the font.
const (
	SeverityCritical ErrorSeverity = iota
	SeverityMajor                  // single queries may fail
	SeverityMinor
)

var severityNames = [...]string{"critical", "major", "minor"}

func (s ErrorSeverity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// FontError is a problem within a font table, found during parsing.
type FontError struct {
	Table    Tag    // 0 for the font header
	Section  string // part of the table, e.g. "Size" or "Bounds"
	Issue    string
	Severity ErrorSeverity
	Offset   uint32 // position in the font binary, 0 if unknown
}

func (e FontError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", where(e.Table, e.Section, e.Offset), e.Issue, e.Severity)
}

func where(table Tag, section string, offset uint32) string {
	loc := "header"
	if table != 0 {
		loc = table.String()
	}
	if section != "" {
		loc += "/" + section
	}
	if offset > 0 {
		loc += fmt.Sprintf("@%d", offset)
	}
	return loc
}

// FontWarning is a deviation from the OpenType specification which parsing
// has worked around.
type FontWarning struct {
	Table  Tag
	Issue  string
	Offset uint32
}

func (w FontWarning) String() string {
	return fmt.Sprintf("%s: %s", where(w.Table, "", w.Offset), w.Issue)
}

// errorCollector accumulates errors and warnings during a single Parse.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

func (ec *errorCollector) addError(table Tag, section string, issue string, severity ErrorSeverity, offset uint32) {
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	ec.warnings = append(ec.warnings, FontWarning{Table: table, Issue: issue, Offset: offset})
}

// fail records a critical error and returns it wrapped in ErrFontFormat.
func (ec *errorCollector) fail(table Tag, section string, offset uint32, format string, args ...any) error {
	ec.addError(table, section, fmt.Sprintf(format, args...), SeverityCritical, offset)
	return fmt.Errorf("%w: %v", ErrFontFormat, ec.errors[len(ec.errors)-1])
}

func (ec *errorCollector) hasErrors() bool {
	return len(ec.errors) > 0
}

func (ec *errorCollector) hasCriticalErrors() bool {
	for _, err := range ec.errors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
