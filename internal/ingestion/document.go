package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

// Modality identifies how a document was supplied.
type Modality string

const (
	ModalitySpreadsheet Modality = "spreadsheet"
	ModalityText        Modality = "text"
)

const (
	// pdsHeaderScanRows bounds how deep into the first sheet the loader looks
	// for the form title when sheet names are unconventional.
	pdsHeaderScanRows = 10
	// pdsHeaderScanCols bounds how wide that scan goes.
	pdsHeaderScanCols = 15
)

// Document is the in-memory, modality-tagged form of one uploaded file.
// Spreadsheet documents keep their rows per sheet in workbook order; text
// documents keep the full extracted text.
type Document struct {
	Modality Modality
	// Sheets holds rows per sheet for spreadsheet documents, in workbook order.
	Sheets []Sheet
	// Text is the extracted plain text for PDF documents.
	Text string
}

// Sheet is one worksheet's cell grid.
type Sheet struct {
	Name string
	Rows [][]string
}

// AllRows concatenates every sheet's rows in workbook order. The canonical
// form splits its sections across four sheets; a flat row view lets the
// section locator treat both the four-sheet and single-sheet layouts the same
// way.
func (d *Document) AllRows() [][]string {
	var rows [][]string
	for _, s := range d.Sheets {
		rows = append(rows, s.Rows...)
	}
	return rows
}

// canonical sheet names of the CSC Form 212 workbook, plus aliases seen in the
// wild.
var pdsSheetMarkers = []string{"c1", "c2", "c3", "c4", "cs form 212", "pds", "personal data sheet"}

// header phrases that identify the form when sheet names carry no signal.
var pdsHeaderMarkers = []string{"personal data sheet", "cs form no. 212", "cs form 212"}

// Load classifies raw bytes as a PDS spreadsheet or a text-bearing document
// and parses them into a Document. It is pure over its inputs. The only fatal
// outcome is models.ErrUnsupportedFormat: the bytes are neither a
// recognizable PDS workbook nor extractable text.
func Load(data []byte, ext string) (*Document, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), ".")) {
	case "xlsx", "xls", "xlsm":
		return loadSpreadsheet(data)
	case "pdf":
		return loadPDF(data)
	default:
		return nil, fmt.Errorf("%w: extension %q", models.ErrUnsupportedFormat, ext)
	}
}

func loadSpreadsheet(data []byte) (*Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable workbook: %v", models.ErrUnsupportedFormat, err)
	}
	defer f.Close()

	doc := &Document{Modality: ModalitySpreadsheet}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		doc.Sheets = append(doc.Sheets, Sheet{Name: name, Rows: rows})
	}

	if !isPDSWorkbook(doc) {
		return nil, fmt.Errorf("%w: workbook has no PDS sheet names or header text", models.ErrUnsupportedFormat)
	}
	return doc, nil
}

func loadPDF(data []byte) (*Document, error) {
	text, err := extractPDFText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnsupportedFormat, err)
	}
	return &Document{Modality: ModalityText, Text: text}, nil
}

// isPDSWorkbook checks the two conventional markers: canonical section sheet
// names, or the form title within the first rows of the first sheet.
func isPDSWorkbook(doc *Document) bool {
	for _, s := range doc.Sheets {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		for _, marker := range pdsSheetMarkers {
			if name == marker {
				return true
			}
		}
	}

	if len(doc.Sheets) == 0 {
		return false
	}
	first := doc.Sheets[0].Rows
	for r := 0; r < len(first) && r < pdsHeaderScanRows; r++ {
		for c := 0; c < len(first[r]) && c < pdsHeaderScanCols; c++ {
			cell := strings.ToLower(first[r][c])
			for _, marker := range pdsHeaderMarkers {
				if strings.Contains(cell, marker) {
					return true
				}
			}
		}
	}
	return false
}
