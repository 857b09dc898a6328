package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/voltview/voltview/internal/domain"
)

const (
	defaultRangeLimit = 100
	maxRangeLimit     = 5000
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

// ---- readings (append-only) ----

func (r *Repos) InsertReading(rd *domain.Reading) error {
	res, err := r.db.Exec(`INSERT INTO readings (voltage, current, power, energy, frequency, pf, timestamp) VALUES (?,?,?,?,?,?,?)`,
		rd.Voltage, rd.Current, rd.Power, rd.Energy, rd.Frequency, rd.PowerFactor, rd.Timestamp)
	if err != nil {
		return err
	}
	rd.ID, err = res.LastInsertId()
	return err
}

func (r *Repos) LatestReading() (*domain.Reading, error) {
	var rd domain.Reading
	err := r.db.Get(&rd, `SELECT * FROM readings ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

// ReadingRange returns a window of readings in ascending id order. The
// window is selected newest-first (offset 0 is the most recent limit
// rows) and then reversed, matching the dashboard's paging. Limit
// defaults to 100 and is capped at 5000; negative offsets clamp to 0.
func (r *Repos) ReadingRange(limit, offset int) ([]domain.Reading, error) {
	if limit <= 0 {
		limit = defaultRangeLimit
	}
	if limit > maxRangeLimit {
		limit = maxRangeLimit
	}
	if offset < 0 {
		offset = 0
	}

	var out []domain.Reading
	err := r.db.Select(&out, `SELECT * FROM readings ORDER BY id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *Repos) AllReadings() ([]domain.Reading, error) {
	var out []domain.Reading
	err := r.db.Select(&out, `SELECT * FROM readings ORDER BY id ASC`)
	return out, err
}

// RecentReadings returns up to n most-recent readings in ascending id
// order. Used by the aggregation window.
func (r *Repos) RecentReadings(n int) ([]domain.Reading, error) {
	return r.ReadingRange(n, 0)
}

// ---- alerts ----

// AlertFilter selects which alerts ListAlerts returns.
type AlertFilter int

const (
	AllAlerts AlertFilter = iota
	ActiveAlerts
	ResolvedAlerts
)

func (r *Repos) ListAlerts(filter AlertFilter) ([]domain.Alert, error) {
	q := `SELECT * FROM alerts ORDER BY id DESC`
	switch filter {
	case ActiveAlerts:
		q = `SELECT * FROM alerts WHERE resolved = 0 ORDER BY id DESC`
	case ResolvedAlerts:
		q = `SELECT * FROM alerts WHERE resolved = 1 ORDER BY id DESC`
	}
	var out []domain.Alert
	err := r.db.Select(&out, q)
	return out, err
}

func (r *Repos) InsertAlert(a *domain.Alert) error {
	res, err := r.db.Exec(`INSERT INTO alerts (type, message, timestamp, resolved) VALUES (?,?,?,?)`,
		a.Type, a.Message, a.Timestamp, a.Resolved)
	if err != nil {
		return err
	}
	a.ID, err = res.LastInsertId()
	return err
}

// ResolveAlert flips resolved to true. Resolving an already-resolved
// alert succeeds; only an absent id reports ErrNotFound.
func (r *Repos) ResolveAlert(id int64) error {
	res, err := r.db.Exec(`UPDATE alerts SET resolved = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- reports ----

func (r *Repos) ListReports() ([]domain.Report, error) {
	var out []domain.Report
	err := r.db.Select(&out, `SELECT * FROM reports ORDER BY date DESC, id DESC`)
	return out, err
}

func (r *Repos) InsertReport(rp *domain.Report) error {
	res, err := r.db.Exec(`INSERT INTO reports (date, summary, report_type, status, file_path, created_at) VALUES (?,?,?,?,?,?)`,
		rp.Date, rp.Summary, rp.ReportType, rp.Status, rp.FilePath, rp.CreatedAt)
	if err != nil {
		return err
	}
	rp.ID, err = res.LastInsertId()
	return err
}

// ---- users ----

func (r *Repos) UserByName(username string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT * FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
