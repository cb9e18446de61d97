package generator

import "strings"

// pyDoc builds a generated Python document as an ordered list of line units
// with explicit indent levels, so indentation and blank-line placement are
// properties of the builder rather than side effects of text substitution.
type pyDoc struct {
	indent string
	lines  []pyLine
}

type pyLine struct {
	level int
	text  string // empty means a blank line regardless of level
}

func newPyDoc(indent string) *pyDoc {
	return &pyDoc{indent: indent}
}

// Line appends one line at the given indent level.
func (d *pyDoc) Line(level int, text string) {
	d.lines = append(d.lines, pyLine{level: level, text: text})
}

// Blank appends a blank line.
func (d *pyDoc) Blank() {
	d.lines = append(d.lines, pyLine{})
}

// Block appends pre-rendered multi-line text at the given base indent level.
// Interior blank lines are preserved; trailing newlines do not add blanks.
func (d *pyDoc) Block(level int, text string) {
	for _, ln := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if ln == "" {
			d.Blank()
			continue
		}
		d.lines = append(d.lines, pyLine{level: level, text: ln})
	}
}

// String renders the document. Trailing blank lines are dropped so the
// result always ends with exactly one newline.
func (d *pyDoc) String() string {
	lines := d.lines
	for len(lines) > 0 && lines[len(lines)-1].text == "" {
		lines = lines[:len(lines)-1]
	}
	var sb strings.Builder
	for _, ln := range lines {
		if ln.text != "" {
			sb.WriteString(strings.Repeat(d.indent, ln.level))
			sb.WriteString(ln.text)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
