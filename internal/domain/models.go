package domain

// Reading is one sensor sample. The timestamp is kept as the ISO-8601
// string stamped at ingest time; energy, frequency and power factor are
// optional on the wire and null in the store when the sensor did not
// report them.
type Reading struct {
	ID          int64    `db:"id" json:"id"`
	Voltage     float64  `db:"voltage" json:"voltage"`
	Current     float64  `db:"current" json:"current"`
	Power       float64  `db:"power" json:"power"`
	Energy      *float64 `db:"energy" json:"energy"`
	Frequency   *float64 `db:"frequency" json:"frequency"`
	PowerFactor *float64 `db:"pf" json:"power_factor"`
	Timestamp   string   `db:"timestamp" json:"timestamp"`
}

// Alert severities.
const (
	AlertCritical = "critical"
	AlertWarning  = "warning"
	AlertInfo     = "info"
)

type Alert struct {
	ID        int64  `db:"id" json:"id"`
	Type      string `db:"type" json:"type"`
	Message   string `db:"message" json:"message"`
	Timestamp string `db:"timestamp" json:"timestamp"`
	Resolved  bool   `db:"resolved" json:"resolved"`
}

// Report statuses. Processing and Generated are non-terminal; a report
// row is never mutated once Completed or Failed.
const (
	ReportProcessing = "Processing"
	ReportGenerated  = "Generated"
	ReportCompleted  = "Completed"
	ReportFailed     = "Failed"
)

type Report struct {
	ID         int64   `db:"id" json:"id"`
	Date       string  `db:"date" json:"date"`
	Summary    string  `db:"summary" json:"summary"`
	ReportType string  `db:"report_type" json:"report_type"`
	Status     string  `db:"status" json:"status"`
	FilePath   *string `db:"file_path" json:"file_path"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
}

type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}
