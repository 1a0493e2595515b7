package renderer

import (
	"bytes"
	"fmt"
	"time"

	ticketserrors "utsav/internal/tickets/errors"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	titleFontSize = 25
	bodyFontSize  = 12
	lineHeight    = 7
)

// PDFRenderer draws an A4 ticket with the core Helvetica font. Content streams
// are left uncompressed so the ticket text stays searchable in the raw file.
// Text is written in cp1252; a ticket with characters outside it is refused
// with ErrUnsupportedText so the caller can send another format.
type PDFRenderer struct {
	now func() time.Time
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{now: time.Now}
}

func (r *PDFRenderer) Extension() string   { return "pdf" }
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Render(t Ticket) ([]byte, error) {
	lines := t.Lines()
	for _, line := range lines {
		if !encodable(line) {
			return nil, fmt.Errorf("%w: %q", ticketserrors.ErrUnsupportedText, line)
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetCompression(false)
	pdf.SetTitle(Title+" "+t.BookingID, false)
	pdf.SetCreationDate(r.now())
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", titleFontSize)
	pdf.CellFormat(0, 14, Title, "", 1, "C", false, 0, "")
	pdf.Ln(lineHeight)

	pdf.SetFont("Helvetica", "", bodyFontSize)
	for _, line := range lines {
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(lineHeight)
	pdf.CellFormat(0, lineHeight, Footer, "", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to draw ticket: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func encodable(s string) bool {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}
