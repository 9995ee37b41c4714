// Package render builds the triage workbook from grouped backup records.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/vietddude/backupreport/internal/core/domain"
)

// Columns are the data column labels, in order.
var Columns = [...]string{
	"Server/Workload Affected",
	"Status",
	"Job Name",
	"Backup Method",
	"Resolved",
	"Ticket number",
	"Technician Notes",
}

const (
	markerCol = 5
	notesCol  = 7

	headerRowHeight = 20
	dataRowHeight   = 30

	maxAutoWidth  = 50
	minNotesWidth = 100

	unknownOrganization = "Unknown Client"
)

// FileName returns the report filename for the given report day.
func FileName(day time.Time) string {
	return fmt.Sprintf("enhanced_backup_report_%s_AEST.xlsx", domain.FileDate(day))
}

// Renderer lays out the regular and special sections on one sheet.
type Renderer struct {
	sheetTitle   string
	sectionTitle string
	log          *slog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(sheetTitle, sectionTitle string) *Renderer {
	return &Renderer{
		sheetTitle:   sheetTitle,
		sectionTitle: sectionTitle,
		log:          slog.Default().With("component", "renderer"),
	}
}

// sheetWriter tracks the cursor and per-column widths while rendering.
type sheetWriter struct {
	f          *excelize.File
	sheet      string
	styles     *styles
	row        int
	markerRefs []string
	widths     [len(Columns)]int
}

// Render builds the workbook. The caller owns the returned file and must Close it.
func (r *Renderer) Render(regular, special []domain.OrganizationGroup) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), r.sheetTitle); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: r.sheetTitle, styles: st, row: 1}
	if err := r.write(w, regular, special); err != nil {
		_ = f.Close()
		return nil, err
	}

	r.log.Debug("Rendered workbook", "regular_groups", len(regular), "special_groups", len(special), "rows", w.row-1)
	return f, nil
}

func (r *Renderer) write(w *sheetWriter, regular, special []domain.OrganizationGroup) error {
	for _, g := range regular {
		if err := w.group(g, false); err != nil {
			return err
		}
	}

	w.row++
	if err := w.sectionTitle(r.sectionTitle); err != nil {
		return err
	}

	for _, g := range special {
		if err := w.group(g, true); err != nil {
			return err
		}
	}

	if err := w.markerValidation(); err != nil {
		return err
	}
	return w.autoSize()
}

func (w *sheetWriter) cell(col int) string {
	name, _ := excelize.CoordinatesToCellName(col, w.row)
	return name
}

func (w *sheetWriter) set(col int, value string, style int) error {
	ref := w.cell(col)
	if err := w.f.SetCellStr(w.sheet, ref, value); err != nil {
		return fmt.Errorf("set %s: %w", ref, err)
	}
	if err := w.f.SetCellStyle(w.sheet, ref, ref, style); err != nil {
		return fmt.Errorf("style %s: %w", ref, err)
	}
	if n := utf8.RuneCountInString(value); n > w.widths[col-1] {
		w.widths[col-1] = n
	}
	return nil
}

func (w *sheetWriter) height(h float64) error {
	if err := w.f.SetRowHeight(w.sheet, w.row, h); err != nil {
		return fmt.Errorf("row %d height: %w", w.row, err)
	}
	return nil
}

func (w *sheetWriter) sectionTitle(title string) error {
	if err := w.set(1, title, w.styles.sectionTitle); err != nil {
		return err
	}
	if err := w.height(headerRowHeight); err != nil {
		return err
	}
	w.row++
	return nil
}

// group writes the organization header, the column header, every record
// row, then leaves one blank row.
func (w *sheetWriter) group(g domain.OrganizationGroup, special bool) error {
	sc := w.styles.scheme(special)

	org := g.Organization
	if org == "" {
		org = unknownOrganization
	}
	if err := w.set(1, org, sc.org); err != nil {
		return err
	}
	if err := w.height(headerRowHeight); err != nil {
		return err
	}
	w.row++

	for i, label := range Columns {
		if err := w.set(i+1, label, sc.header); err != nil {
			return err
		}
	}
	if err := w.height(headerRowHeight); err != nil {
		return err
	}
	w.row++

	start := w.row
	for i, rec := range g.Records {
		cellStyle, notesStyle := w.styles.cell, w.styles.notes
		if i%2 == 1 {
			cellStyle, notesStyle = w.styles.cellZebra, w.styles.notesZebra
		}
		for col, v := range domain.NewReportRow(rec).Values() {
			style := cellStyle
			if col+1 == notesCol {
				style = notesStyle
			}
			if err := w.set(col+1, v, style); err != nil {
				return err
			}
		}
		if err := w.height(dataRowHeight); err != nil {
			return err
		}
		w.row++
	}

	if end := w.row - 1; end >= start {
		if err := w.markerFormatting(start, end); err != nil {
			return err
		}
	}

	w.row++
	return nil
}

// markerFormatting colors the resolution cells of rows start..end by value.
func (w *sheetWriter) markerFormatting(start, end int) error {
	col, _ := excelize.ColumnNumberToName(markerCol)
	ref := fmt.Sprintf("%s%d", col, start)
	if end > start {
		ref = fmt.Sprintf("%s:%s%d", ref, col, end)
	}
	w.markerRefs = append(w.markerRefs, ref)

	resolved, unresolved := w.styles.resolved, w.styles.unresolved
	err := w.f.SetConditionalFormat(w.sheet, ref, []excelize.ConditionalFormatOptions{
		{Type: "formula", Criteria: fmt.Sprintf(`$%s%d="%s"`, col, start, domain.MarkerResolved), Format: &resolved},
		{Type: "formula", Criteria: fmt.Sprintf(`$%s%d="%s"`, col, start, domain.MarkerUnresolved), Format: &unresolved},
	})
	if err != nil {
		return fmt.Errorf("conditional format %s: %w", ref, err)
	}
	return nil
}

// markerValidation restricts every resolution cell to the two marker glyphs.
func (w *sheetWriter) markerValidation() error {
	if len(w.markerRefs) == 0 {
		return nil
	}

	dv := excelize.NewDataValidation(true)
	dv.Sqref = strings.Join(w.markerRefs, " ")
	if err := dv.SetDropList(domain.Markers()); err != nil {
		return fmt.Errorf("marker drop list: %w", err)
	}
	if err := w.f.AddDataValidation(w.sheet, dv); err != nil {
		return fmt.Errorf("add marker validation: %w", err)
	}
	return nil
}

// autoSize sets every column to its longest value plus padding, capped,
// and keeps the notes column wide enough to type into.
func (w *sheetWriter) autoSize() error {
	for i, n := range w.widths {
		col := i + 1
		width := float64(min(n+2, maxAutoWidth))
		if col == notesCol {
			width = max(width, minNotesWidth)
		}

		name, _ := excelize.ColumnNumberToName(col)
		if err := w.f.SetColWidth(w.sheet, name, name, width); err != nil {
			return fmt.Errorf("column %s width: %w", name, err)
		}
	}
	return nil
}

// Save writes the workbook into dir and returns the full path.
func Save(f *excelize.File, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}
