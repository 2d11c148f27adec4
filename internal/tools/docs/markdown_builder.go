package docs

import (
	"io"
	"strings"

	md "github.com/nao1215/markdown"
)

// MarkdownBuilder wraps the markdown package with chainable helpers.
type MarkdownBuilder struct {
	md     *md.Markdown
	buffer *strings.Builder
}

// NewMarkdownBuilder creates a builder writing to w on Build.
func NewMarkdownBuilder(w io.Writer) *MarkdownBuilder {
	return &MarkdownBuilder{md: md.NewMarkdown(w)}
}

// NewMarkdownBuilderBuffer creates a builder with an internal buffer,
// for cell content assembled before it goes into a table.
func NewMarkdownBuilderBuffer() *MarkdownBuilder {
	buffer := &strings.Builder{}
	return &MarkdownBuilder{md: md.NewMarkdown(buffer), buffer: buffer}
}

// String returns the buffered content after Build.
func (m *MarkdownBuilder) String() string {
	if m.buffer == nil {
		return ""
	}
	return m.buffer.String()
}

// H1 creates a level 1 header
func (m *MarkdownBuilder) H1(text string) *MarkdownBuilder {
	m.md.H1(text)
	return m
}

// H2 creates a level 2 header
func (m *MarkdownBuilder) H2(text string) *MarkdownBuilder {
	m.md.H2(text)
	return m
}

// PlainText adds plain text
func (m *MarkdownBuilder) PlainText(text string) *MarkdownBuilder {
	m.md.PlainText(text)
	return m
}

// PlainTextf adds formatted plain text
func (m *MarkdownBuilder) PlainTextf(format string, args ...any) *MarkdownBuilder {
	m.md.PlainTextf(format, args...)
	return m
}

// LF adds a line feed
func (m *MarkdownBuilder) LF() *MarkdownBuilder {
	m.md.LF()
	return m
}

// Italic adds italic text
func (m *MarkdownBuilder) Italic(text string) *MarkdownBuilder {
	m.md.PlainText(md.Italic(text))
	return m
}

// Table adds a table.
func (m *MarkdownBuilder) Table(header []string, rows [][]string) *MarkdownBuilder {
	m.md.Table(md.TableSet{Header: header, Rows: rows})
	return m
}

// BulletList adds a bullet list.
func (m *MarkdownBuilder) BulletList(items ...string) *MarkdownBuilder {
	m.md.BulletList(items...)
	return m
}

// Build writes the document.
func (m *MarkdownBuilder) Build() error {
	return m.md.Build()
}
