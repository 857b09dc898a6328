package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltview/voltview/internal/config"
	"github.com/voltview/voltview/internal/database"
	"github.com/voltview/voltview/internal/domain"
)

func newTestServices(t *testing.T) (*sqlx.DB, *Services, string) {
	t.Helper()
	require.NoError(t, config.Load())

	db, err := database.Open(filepath.Join(t.TempDir(), "voltview.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	return db, New(db, dir), dir
}

func ingest(t *testing.T, svcs *Services, voltage, current, power float64) {
	t.Helper()
	_, err := svcs.Readings.Ingest(ReadingInput{Voltage: &voltage, Current: &current, Power: &power})
	require.NoError(t, err)
}

func TestGenerateReport(t *testing.T) {
	_, svcs, dir := newTestServices(t)

	ingest(t, svcs, 230, 100.0/230, 100)
	ingest(t, svcs, 230, 200.0/230, 200)
	ingest(t, svcs, 230, 300.0/230, 300)

	rp, err := svcs.Reports.Generate()
	require.NoError(t, err)

	assert.Equal(t, domain.ReportCompleted, rp.Status)
	assert.Equal(t, "Energy Analysis", rp.ReportType)
	assert.Equal(t, "3 Readings analyzed. Avg Power: 200.00W, Peak Power: 300W, Avg Voltage: 230.00V", rp.Summary)
	require.NotNil(t, rp.FilePath)
	assert.True(t, strings.HasPrefix(*rp.FilePath, "/files/report-"))

	// the artifact exists and carries one row per reading
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "Report Generated: "))
	assert.Equal(t, "Summary: "+rp.Summary, lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Timestamp,Voltage (V),Current (A),Power (W),Energy (kWh),Frequency (Hz),PF", lines[3])
	assert.True(t, strings.HasSuffix(lines[4], ",100,0,0,0"), "missing optionals render as literal 0: %s", lines[4])

	// the report row is queryable
	reports, err := svcs.Reports.List()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, rp.ID, reports[0].ID)
}

func TestGenerateReportEmptyStore(t *testing.T) {
	_, svcs, dir := newTestServices(t)

	_, err := svcs.Reports.Generate()
	assert.ErrorIs(t, err, domain.ErrNoData)

	// no report row and no artifact
	reports, err := svcs.Reports.List()
	require.NoError(t, err)
	assert.Empty(t, reports)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateReportRemovesOrphanArtifact(t *testing.T) {
	db, svcs, dir := newTestServices(t)

	ingest(t, svcs, 230, 2, 460)

	// force the row insert to fail after the CSV write
	_, err := db.Exec(`DROP TABLE reports`)
	require.NoError(t, err)

	_, err = svcs.Reports.Generate()
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "artifact is cleaned up when the row insert fails")
}

func TestCreateReportDefaults(t *testing.T) {
	_, svcs, _ := newTestServices(t)

	rp, err := svcs.Reports.Create(CreateInput{Date: "2026-08-02", Summary: "weekly rollup", ReportType: "Weekly"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportGenerated, rp.Status)
	assert.Nil(t, rp.FilePath)
	assert.NotEmpty(t, rp.CreatedAt)
}

func TestCreateReportValidation(t *testing.T) {
	_, svcs, _ := newTestServices(t)

	_, err := svcs.Reports.Create(CreateInput{Summary: "s", ReportType: "Daily"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svcs.Reports.Create(CreateInput{Date: "2026-08-02", ReportType: "Daily"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svcs.Reports.Create(CreateInput{Date: "2026-08-02", Summary: "s"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIngestValidation(t *testing.T) {
	_, svcs, _ := newTestServices(t)

	two := 2.0
	_, err := svcs.Readings.Ingest(ReadingInput{Current: &two})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIngestStampsTimestamp(t *testing.T) {
	_, svcs, _ := newTestServices(t)

	v, i, p := 230.0, 2.0, 460.0
	rd, err := svcs.Readings.Ingest(ReadingInput{Voltage: &v, Current: &i, Power: &p})
	require.NoError(t, err)
	assert.NotZero(t, rd.ID)
	assert.NotEmpty(t, rd.Timestamp)
	assert.Nil(t, rd.Energy)

	latest, err := svcs.Repos.LatestReading()
	require.NoError(t, err)
	assert.Equal(t, rd.ID, latest.ID)
	assert.Equal(t, 460.0, latest.Power)
}
