package stlc

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// SectionKey names one stage of the STLC pipeline inside a ResultBundle.
type SectionKey int

const (
	SectionTestCases SectionKey = iota
	SectionTestData
	SectionTestScripts
	SectionChangeImpact
	SectionBugReports
	SectionExecutionResults
	SectionSummaryReport
	SectionReleaseReadiness
)

// SectionCount is the number of known section keys.
const SectionCount = 8

type sectionDef struct {
	key        string
	field      string
	label      string
	structured bool
}

// sectionTable is indexed by SectionKey and fixes the display order.
var sectionTable = [SectionCount]sectionDef{
	SectionTestCases:        {key: "test_case_generation", field: "test_cases", label: "Test Cases"},
	SectionTestData:         {key: "test_data_generation", field: "test_data", label: "Test Data"},
	SectionTestScripts:      {key: "test_script_automation", field: "automated_scripts", label: "Automated Scripts"},
	SectionChangeImpact:     {key: "change_impact_analysis", field: "change_impact_analysis", label: "Change Impact Analysis", structured: true},
	SectionBugReports:       {key: "bug_report_generation", field: "structured_bug_reports", label: "Bug Reports"},
	SectionExecutionResults: {key: "simulate_test_execution", field: "simulated_execution_results", label: "Simulated Execution Results"},
	SectionSummaryReport:    {key: "test_summary_reporting", field: "test_summary_report", label: "Test Summary Report"},
	SectionReleaseReadiness: {key: "release_readiness_advisory", field: "release_readiness_advice", label: "Release Readiness"},
}

// SectionKeys lists every section key in display order.
func SectionKeys() []SectionKey {
	keys := make([]SectionKey, SectionCount)
	for i := range keys {
		keys[i] = SectionKey(i)
	}
	return keys
}

func (k SectionKey) valid() bool {
	return k >= 0 && int(k) < SectionCount
}

// String returns the wire name of the section, e.g. "test_case_generation".
func (k SectionKey) String() string {
	if !k.valid() {
		return fmt.Sprintf("SectionKey(%d)", int(k))
	}
	return sectionTable[k].key
}

// Field returns the designated field inside the section payload.
func (k SectionKey) Field() string {
	if !k.valid() {
		return ""
	}
	return sectionTable[k].field
}

// Label returns the human readable section title.
func (k SectionKey) Label() string {
	if !k.valid() {
		return ""
	}
	return sectionTable[k].label
}

// SectionByLabel looks up the section key for a display label.
func SectionByLabel(label string) (SectionKey, bool) {
	for i, def := range sectionTable {
		if def.label == label {
			return SectionKey(i), true
		}
	}
	return 0, false
}

// ResultBundle is the structured response for one submission: the raw JSON
// object found under "response".
type ResultBundle struct {
	raw []byte
}

// NewResultBundle wraps raw JSON. A nil or empty slice is the empty bundle.
func NewResultBundle(raw []byte) ResultBundle {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ResultBundle{}
	}
	return ResultBundle{raw: raw}
}

// Raw returns the JSON of the bundle; "{}" for the empty bundle.
func (b ResultBundle) Raw() []byte {
	if len(b.raw) == 0 {
		return []byte("{}")
	}
	return b.raw
}

// Field returns the designated field of section key.
func (b ResultBundle) Field(key SectionKey) gjson.Result {
	if len(b.raw) == 0 || !key.valid() {
		return gjson.Result{}
	}
	return gjson.GetBytes(b.raw, sectionTable[key].key+"."+sectionTable[key].field)
}

// DisplaySection is one renderable, copyable unit derived from a bundle.
type DisplaySection struct {
	Key     SectionKey
	Label   string
	Content string
	Copied  bool
}

// DeriveSections maps a bundle into its display sections, in the fixed
// section order, skipping sections whose designated field is absent, null or
// empty. It has no side effects.
func DeriveSections(bundle ResultBundle) []DisplaySection {
	var sections []DisplaySection
	for _, key := range SectionKeys() {
		content, ok := renderField(bundle.Field(key))
		if !ok {
			continue
		}
		sections = append(sections, DisplaySection{
			Key:     key,
			Label:   key.Label(),
			Content: content,
		})
	}
	return sections
}

// renderField turns a designated field into display text. Values that are
// absent, null, false, zero or the empty string produce no section.
func renderField(field gjson.Result) (string, bool) {
	switch {
	case !field.Exists(), field.Type == gjson.Null, field.Type == gjson.False:
		return "", false
	case field.Type == gjson.Number && field.Num == 0:
		return "", false
	case field.Type == gjson.String:
		text := field.String()
		return text, text != ""
	}
	var b strings.Builder
	writeIndented(&b, field, "")
	return b.String(), true
}

// writeIndented writes v as JSON indented by two spaces in the service's key
// order, with numbers and strings in canonical form.
func writeIndented(b *strings.Builder, v gjson.Result, indent string) {
	switch v.Type {
	case gjson.String:
		b.WriteString(quoteJSON(v.String()))
	case gjson.Number:
		b.WriteString(formatNumber(v.Num))
	case gjson.True:
		b.WriteString("true")
	case gjson.False:
		b.WriteString("false")
	case gjson.Null:
		b.WriteString("null")
	case gjson.JSON:
		open, end := "[", "]"
		isObject := v.IsObject()
		if isObject {
			open, end = "{", "}"
		}
		inner := indent + "  "
		n := 0
		v.ForEach(func(key, value gjson.Result) bool {
			if n == 0 {
				b.WriteString(open)
			} else {
				b.WriteString(",")
			}
			b.WriteString("\n" + inner)
			if isObject {
				b.WriteString(quoteJSON(key.String()))
				b.WriteString(": ")
			}
			writeIndented(b, value, inner)
			n++
			return true
		})
		if n == 0 {
			b.WriteString(open + end)
			return
		}
		b.WriteString("\n" + indent + end)
	}
}

// quoteJSON escapes only quotes, backslashes and control characters.
func quoteJSON(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// formatNumber prints the shortest round-trip form, in decimal notation for
// magnitudes in [1e-6, 1e21) and exponent notation ("1e+21", "1.5e-7")
// outside it.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// FormatSection renders one section the way "copy all" joins them.
func FormatSection(section DisplaySection) string {
	return section.Label + ":\n" + section.Content
}

// FormatAll joins sections as "<label>:\n<content>" separated by blank lines.
func FormatAll(sections []DisplaySection) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, FormatSection(s))
	}
	return strings.Join(parts, "\n\n")
}
