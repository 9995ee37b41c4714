package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vietddude/backupreport/internal/core/domain"
)

const sheet = "Backup Report"

func scenario() (regular, special []domain.OrganizationGroup) {
	regular = []domain.OrganizationGroup{
		{Organization: "Acme", Records: []domain.BackupRecord{
			{CompanyName: "Acme", DeviceName: "ACME-DC01", JobName: "Nightly Full", MethodName: "Datto", StatusName: "Failure"},
			{CompanyName: "Acme", DeviceName: "ACME-FS01", JobName: "Hourly", MethodName: "Veeam", StatusName: "Warning"},
		}},
		{Organization: "Globex", Records: []domain.BackupRecord{
			{CompanyName: "Globex", DeviceName: "GLX-SQL", JobName: "SQL", MethodName: "Veeam", StatusName: "No Result"},
		}},
	}
	special = []domain.OrganizationGroup{
		{Organization: "Acme", Records: []domain.BackupRecord{
			{CompanyName: "Acme", DeviceName: "acme.onmicrosoft.com", JobName: "SharePoint sites to Cloud storage", MethodName: "Acronis API", StatusName: "Failure"},
		}},
	}
	return regular, special
}

func render(t *testing.T, regular, special []domain.OrganizationGroup) *excelize.File {
	t.Helper()
	f, err := NewRenderer(sheet, "M365 Acronis Backups").Render(regular, special)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func renderScenario(t *testing.T) *excelize.File {
	t.Helper()
	regular, special := scenario()
	return render(t, regular, special)
}

func value(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestRender_Layout(t *testing.T) {
	f := renderScenario(t)

	assert.Equal(t, []string{sheet}, f.GetSheetList())

	// regular section
	assert.Equal(t, "Acme", value(t, f, "A1"))
	assert.Equal(t, "Server/Workload Affected", value(t, f, "A2"))
	assert.Equal(t, "Technician Notes", value(t, f, "G2"))
	assert.Equal(t, "ACME-DC01", value(t, f, "A3"))
	assert.Equal(t, "Failure", value(t, f, "B3"))
	assert.Equal(t, "Nightly Full", value(t, f, "C3"))
	assert.Equal(t, "Datto", value(t, f, "D3"))
	assert.Equal(t, "✘", value(t, f, "E3"))
	assert.Equal(t, "", value(t, f, "F3"))
	assert.Equal(t, "", value(t, f, "G3"))
	assert.Equal(t, "ACME-FS01", value(t, f, "A4"))
	assert.Equal(t, "", value(t, f, "A5"))
	assert.Equal(t, "Globex", value(t, f, "A6"))
	assert.Equal(t, "Status", value(t, f, "B7"))
	assert.Equal(t, "GLX-SQL", value(t, f, "A8"))
	assert.Equal(t, "", value(t, f, "A9"))
	assert.Equal(t, "", value(t, f, "A10"))

	// special section
	assert.Equal(t, "M365 Acronis Backups", value(t, f, "A11"))
	assert.Equal(t, "Acme", value(t, f, "A12"))
	assert.Equal(t, "Job Name", value(t, f, "C13"))
	assert.Equal(t, "acme.onmicrosoft.com", value(t, f, "A14"))
	assert.Equal(t, "Acronis API", value(t, f, "D14"))
	assert.Equal(t, "✘", value(t, f, "E14"))
}

func TestRender_RowHeights(t *testing.T) {
	f := renderScenario(t)

	for row, want := range map[int]float64{1: 20, 2: 20, 3: 30, 4: 30, 11: 20, 12: 20, 13: 20, 14: 30} {
		h, err := f.GetRowHeight(sheet, row)
		require.NoError(t, err)
		assert.Equal(t, want, h, "row %d", row)
	}
}

func TestRender_ZebraAndSchemes(t *testing.T) {
	f := renderScenario(t)

	style := func(ref string) int {
		id, err := f.GetCellStyle(sheet, ref)
		require.NoError(t, err)
		return id
	}
	fill := func(ref string) []string {
		st, err := f.GetStyle(style(ref))
		require.NoError(t, err)
		return fillColors(st.Fill)
	}

	// first data row plain, second striped
	assert.Empty(t, fill("A3"))
	assert.Equal(t, []string{zebraFill}, fill("A4"))
	assert.Equal(t, []string{zebraFill}, fill("G4"))
	// striping restarts per group
	assert.Empty(t, fill("A8"))

	assert.Equal(t, []string{RegularScheme.OrgFill}, fill("A1"))
	assert.Equal(t, []string{RegularScheme.HeaderFill}, fill("A2"))
	assert.Equal(t, []string{sectionTitleFill}, fill("A11"))
	assert.Equal(t, []string{SpecialScheme.OrgFill}, fill("A12"))
	assert.Equal(t, []string{SpecialScheme.HeaderFill}, fill("A13"))

	notes, err := f.GetStyle(style("G3"))
	require.NoError(t, err)
	require.NotNil(t, notes.Alignment)
	assert.True(t, notes.Alignment.WrapText)
}

func TestRender_MarkerValidationAndFormatting(t *testing.T) {
	f := renderScenario(t)

	dvs, err := f.GetDataValidations(sheet)
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	assert.Contains(t, dvs[0].Sqref, "E3:E4")
	assert.Contains(t, dvs[0].Sqref, "E8")
	assert.Contains(t, dvs[0].Sqref, "E14")
	assert.Equal(t, "list", dvs[0].Type)
	assert.Contains(t, dvs[0].Formula1, "✘")
	assert.Contains(t, dvs[0].Formula1, "☑")

	cf, err := f.GetConditionalFormats(sheet)
	require.NoError(t, err)
	assert.Len(t, cf, 3)

	// each rule is anchored at the first row of its range
	for ref, first := range map[string]string{"E3:E4": "E3", "E8": "E8", "E14": "E14"} {
		rules := cf[ref]
		require.Len(t, rules, 2, ref)
		assert.Equal(t, "formula", rules[0].Type)
		assert.Equal(t, `$`+first+`="☑"`, rules[0].Criteria, ref)
		assert.Equal(t, `$`+first+`="✘"`, rules[1].Criteria, ref)
		assert.Equal(t, []string{resolvedFill}, conditionalFill(t, f, rules[0]), ref)
		assert.Equal(t, []string{unresolvedFill}, conditionalFill(t, f, rules[1]), ref)
	}
}

func conditionalFill(t *testing.T, f *excelize.File, rule excelize.ConditionalFormatOptions) []string {
	t.Helper()
	require.NotNil(t, rule.Format)
	st, err := f.GetConditionalStyle(*rule.Format)
	require.NoError(t, err)
	return fillColors(st.Fill)
}

func fillColors(fill excelize.Fill) []string {
	var colors []string
	for _, c := range fill.Color {
		// ARGB values come back with an opaque alpha prefix
		if len(c) == 8 {
			c = strings.TrimPrefix(c, "FF")
		}
		colors = append(colors, strings.ToUpper(c))
	}
	return colors
}

func TestRender_ColumnWidths(t *testing.T) {
	f := renderScenario(t)

	width := func(col string) float64 {
		w, err := f.GetColWidth(sheet, col)
		require.NoError(t, err)
		return w
	}

	// "acme.onmicrosoft.com" is 20, the header label is 24
	assert.Equal(t, float64(len("Server/Workload Affected")+2), width("A"))
	// "SharePoint sites to Cloud storage" is 33
	assert.Equal(t, float64(33+2), width("C"))
	assert.Equal(t, float64(len("Ticket number")+2), width("F"))
	assert.Equal(t, float64(minNotesWidth), width("G"))
}

func TestRender_WidthIsCapped(t *testing.T) {
	long := "a job name that is considerably longer than fifty characters in total"
	f := render(t, []domain.OrganizationGroup{
		{Organization: "Acme", Records: []domain.BackupRecord{{CompanyName: "Acme", JobName: long}}},
	}, nil)

	w, err := f.GetColWidth(sheet, "C")
	require.NoError(t, err)
	assert.Equal(t, float64(maxAutoWidth), w)
}

func TestRender_EmptyInput(t *testing.T) {
	f := render(t, nil, nil)

	assert.Equal(t, "", value(t, f, "A1"))
	assert.Equal(t, "M365 Acronis Backups", value(t, f, "A2"))

	dvs, err := f.GetDataValidations(sheet)
	require.NoError(t, err)
	assert.Empty(t, dvs)
}

func TestRender_UnknownOrganization(t *testing.T) {
	f := render(t, []domain.OrganizationGroup{
		{Organization: "", Records: []domain.BackupRecord{{DeviceName: "orphan"}}},
	}, nil)

	assert.Equal(t, "Unknown Client", value(t, f, "A1"))
	assert.Equal(t, "orphan", value(t, f, "A3"))
}

func TestFileName(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "enhanced_backup_report_2024-03-01_AEST.xlsx", FileName(day))
}

func TestSave(t *testing.T) {
	f := renderScenario(t)
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := Save(f, dir, "report.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.xlsx"), path)

	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.GetCellValue(sheet, "A11")
	require.NoError(t, err)
	assert.Equal(t, "M365 Acronis Backups", v)
}

func TestSave_UnwritableDir(t *testing.T) {
	f := render(t, nil, nil)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// a directory below a regular file cannot be created
	_, err := Save(f, filepath.Join(blocker, "reports"), "report.xlsx")
	require.Error(t, err)
}
