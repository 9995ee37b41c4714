package domain

// BackupRecord is one reported backup job execution.
// Fields are copied verbatim from the API; absent values are empty strings.
type BackupRecord struct {
	CompanyName string
	DeviceName  string
	JobName     string
	MethodName  string
	StatusName  string
}

// Partition classifies a record into one of the two report sections.
type Partition string

const (
	PartitionRegular Partition = "regular"
	PartitionSpecial Partition = "special"
)

// OrganizationGroup holds the records of one organization within a partition.
type OrganizationGroup struct {
	Organization string
	Records      []BackupRecord
}

// Marker is the resolution glyph shown in the "Resolved" column.
type Marker string

const (
	MarkerUnresolved Marker = "✘"
	MarkerResolved   Marker = "☑"
)

// Markers lists the values accepted by the resolution column, in drop-down order.
func Markers() []string {
	return []string{string(MarkerUnresolved), string(MarkerResolved)}
}

// ReportRow is the rendered projection of a BackupRecord.
// Resolved, TicketNumber and Notes are only ever written, never read back.
type ReportRow struct {
	Workload     string
	Status       string
	JobName      string
	Method       string
	Resolved     Marker
	TicketNumber string
	Notes        string
}

// NewReportRow projects a record into its default (unresolved) row.
func NewReportRow(r BackupRecord) ReportRow {
	return ReportRow{
		Workload: r.DeviceName,
		Status:   r.StatusName,
		JobName:  r.JobName,
		Method:   r.MethodName,
		Resolved: MarkerUnresolved,
	}
}

// Values returns the row cells in column order.
func (r ReportRow) Values() []string {
	return []string{r.Workload, r.Status, r.JobName, r.Method, string(r.Resolved), r.TicketNumber, r.Notes}
}
