package renderer

import "strings"

const rule = "---------------------"

// TextRenderer is the plain-text fallback with the same fields as the PDF.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Extension() string   { return "txt" }
func (r *TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (r *TextRenderer) Render(t Ticket) ([]byte, error) {
	var b strings.Builder
	b.WriteString(strings.ToUpper(Title))
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n")
	for _, line := range t.Lines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(rule)
	b.WriteString("\n")
	b.WriteString(Footer)
	b.WriteString("\n")
	return []byte(b.String()), nil
}
