package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voltview/voltview/internal/domain"
	"github.com/voltview/voltview/internal/repository"
)

// reportWindow bounds the most-recent readings a report covers.
const reportWindow = 1000

type ReportService struct {
	repos *repository.Repos
	dir   string
}

func (s *ReportService) List() ([]domain.Report, error) {
	return s.repos.ListReports()
}

// CreateInput is a manually filed report row. Status defaults to
// Generated and file_path to null.
type CreateInput struct {
	Date       string  `json:"date"`
	Summary    string  `json:"summary"`
	ReportType string  `json:"report_type"`
	Status     string  `json:"status"`
	FilePath   *string `json:"file_path"`
}

func (s *ReportService) Create(in CreateInput) (*domain.Report, error) {
	if in.Date == "" {
		return nil, fmt.Errorf("%w: missing report date", domain.ErrValidation)
	}
	if in.Summary == "" {
		return nil, fmt.Errorf("%w: missing report summary", domain.ErrValidation)
	}
	if in.ReportType == "" {
		return nil, fmt.Errorf("%w: missing report type", domain.ErrValidation)
	}
	if in.Status == "" {
		in.Status = domain.ReportGenerated
	}

	rp := &domain.Report{
		Date:       in.Date,
		Summary:    in.Summary,
		ReportType: in.ReportType,
		Status:     in.Status,
		FilePath:   in.FilePath,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.repos.InsertReport(rp); err != nil {
		return nil, err
	}
	return rp, nil
}

// Generate snapshots the most recent readings into a CSV artifact and
// records a Completed report row pointing at it. The CSV is written
// before the row is inserted; if the insert fails the artifact is
// removed again so no orphan file survives either failure order.
func (s *ReportService) Generate() (*domain.Report, error) {
	readings, err := s.repos.RecentReadings(reportWindow)
	if err != nil {
		return nil, err
	}
	stats, err := Summarize(readings)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	summary := fmt.Sprintf("%d Readings analyzed. Avg Power: %.2fW, Peak Power: %sW, Avg Voltage: %.2fV",
		stats.Count, stats.AvgPower, formatValue(stats.PeakPower), stats.AvgVoltage)

	name := fmt.Sprintf("report-%d.csv", now.UnixMilli())
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(renderCSV(now, summary, readings)), 0o644); err != nil {
		return nil, err
	}

	filePath := "/files/" + name
	rp := &domain.Report{
		Date:       now.Format("2006-01-02"),
		Summary:    summary,
		ReportType: "Energy Analysis",
		Status:     domain.ReportCompleted,
		FilePath:   &filePath,
		CreatedAt:  now.Format(time.RFC3339),
	}
	if err := s.repos.InsertReport(rp); err != nil {
		// Drop the artifact rather than leave an orphan on disk.
		if rmErr := os.Remove(path); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", path).Msg("orphan report artifact left behind")
		}
		return nil, err
	}

	log.Info().Int64("id", rp.ID).Str("file", name).Int("readings", stats.Count).Msg("report generated")
	return rp, nil
}

func renderCSV(now time.Time, summary string, readings []domain.Reading) string {
	var b strings.Builder
	b.WriteString("Report Generated: " + now.Format(time.RFC3339) + "\n")
	b.WriteString("Summary: " + summary + "\n")
	b.WriteString("\n")
	b.WriteString("Timestamp,Voltage (V),Current (A),Power (W),Energy (kWh),Frequency (Hz),PF\n")
	for _, r := range readings {
		b.WriteString(r.Timestamp)
		b.WriteByte(',')
		b.WriteString(formatValue(r.Voltage))
		b.WriteByte(',')
		b.WriteString(formatValue(r.Current))
		b.WriteByte(',')
		b.WriteString(formatValue(r.Power))
		b.WriteByte(',')
		b.WriteString(formatOptional(r.Energy))
		b.WriteByte(',')
		b.WriteString(formatOptional(r.Frequency))
		b.WriteByte(',')
		b.WriteString(formatOptional(r.PowerFactor))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatValue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Missing optional fields render as the literal 0.
func formatOptional(f *float64) string {
	if f == nil {
		return "0"
	}
	return formatValue(*f)
}
