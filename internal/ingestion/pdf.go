package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// minExtractedTextLength guards against PDFs whose text layer is missing
// (scanned images): anything shorter is treated as a failed extraction.
const minExtractedTextLength = 50

var (
	reColumnGap = regexp.MustCompile(`\t+| {2,}`)
	reNewlines  = regexp.MustCompile(`\n{3,}`)
)

// extractPDFText pulls the plain text layer out of a PDF held in memory. No
// layout reconstruction is attempted; downstream extraction is anchored on
// keywords, not geometry.
func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := normalizeWhitespace(buf.String())
	if len(text) < minExtractedTextLength {
		return "", fmt.Errorf("extracted text too short (%d chars), likely a scanned image", len(text))
	}
	return text, nil
}

// normalizeWhitespace canonicalizes whitespace while keeping the two markers
// the text extractors anchor on: line boundaries and column gaps. Tab runs and
// longer space runs become exactly two spaces so positional columns stay
// splittable.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = reColumnGap.ReplaceAllString(s, "  ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = reNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
