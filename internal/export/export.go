// Package export writes the displayed STLC sections to disk as Markdown
// artifacts and a rendered HTML report.
package export

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"stlcctl/internal/stlc"
	"stlcctl/pkg/logging"

	"github.com/yuin/goldmark"
)

const (
	subsystem = "Export"

	ReportMarkdownFile = "report.md"
	ReportHTMLFile     = "report.html"
)

// Result lists the files written by Write.
type Result struct {
	Dir   string
	Files []string
}

// Write stores every section as <dir>/<section_key>.md, then a combined
// report.md and its HTML rendering. It fails when there is nothing to export.
func Write(dir string, sections []stlc.DisplaySection) (Result, error) {
	if len(sections) == 0 {
		return Result{}, fmt.Errorf("no sections to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	res := Result{Dir: dir}
	for _, s := range sections {
		name := s.Key.String() + ".md"
		if err := writeFile(dir, name, []byte(sectionMarkdown(s))); err != nil {
			return res, err
		}
		res.Files = append(res.Files, name)
	}

	md := Markdown(sections)
	if err := writeFile(dir, ReportMarkdownFile, []byte(md)); err != nil {
		return res, err
	}
	res.Files = append(res.Files, ReportMarkdownFile)

	page, err := HTML(sections)
	if err != nil {
		return res, err
	}
	if err := writeFile(dir, ReportHTMLFile, []byte(page)); err != nil {
		return res, err
	}
	res.Files = append(res.Files, ReportHTMLFile)

	logging.Info(subsystem, "Exported %d sections to %s", len(sections), dir)
	return res, nil
}

// Markdown renders all sections as one Markdown document.
func Markdown(sections []stlc.DisplaySection) string {
	var b strings.Builder
	b.WriteString("# STLC Results\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionMarkdown(s))
	}
	return b.String()
}

// HTML renders the Markdown report as a standalone HTML page.
func HTML(sections []stlc.DisplaySection) (string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(sections)), &body); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}
	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	page.WriteString(html.EscapeString("STLC Results"))
	page.WriteString("</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}

// sectionMarkdown keeps the generated text verbatim. Structured payloads are
// fenced as JSON; everything else is already Markdown from the service.
func sectionMarkdown(s stlc.DisplaySection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", s.Label)
	if s.Key == stlc.SectionChangeImpact && strings.HasPrefix(strings.TrimSpace(s.Content), "{") {
		fmt.Fprintf(&b, "```json\n%s\n```\n", s.Content)
		return b.String()
	}
	b.WriteString(s.Content)
	if !strings.HasSuffix(s.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
