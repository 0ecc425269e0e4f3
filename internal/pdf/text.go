package pdf

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractText renders every page of a PDF to plain text, pages separated by
// a newline.
func ExtractText(pdfData []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	var sb strings.Builder

	for i := 0; i < pageCount; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

// IsPDF reports whether data starts with the PDF magic header.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
