package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/voltview/voltview/internal/domain"
	"github.com/voltview/voltview/internal/repository"
)

type Services struct {
	Repos    *repository.Repos
	Readings *ReadingService
	Alerts   *AlertService
	Reports  *ReportService
	Auth     *AuthService
}

func New(db *sqlx.DB, reportDir string) *Services {
	repos := repository.New(db)
	return &Services{
		Repos:    repos,
		Readings: &ReadingService{repos: repos},
		Alerts:   &AlertService{repos: repos},
		Reports:  &ReportService{repos: repos, dir: reportDir},
		Auth:     &AuthService{repos: repos},
	}
}

// ReadingInput is an ingestion payload. Pointers distinguish an absent
// field from a literal zero: voltage, current and power are mandatory,
// the rest pass through as null when the sensor omits them.
type ReadingInput struct {
	Voltage     *float64 `json:"voltage"`
	Current     *float64 `json:"current"`
	Power       *float64 `json:"power"`
	Energy      *float64 `json:"energy"`
	Frequency   *float64 `json:"frequency"`
	PowerFactor *float64 `json:"power_factor"`
}

type ReadingService struct {
	repos *repository.Repos
}

// Ingest validates one payload, stamps the server-side timestamp and
// appends it to the reading store. One append per call, no batching.
func (s *ReadingService) Ingest(in ReadingInput) (*domain.Reading, error) {
	if in.Voltage == nil {
		return nil, fmt.Errorf("%w: missing voltage value", domain.ErrValidation)
	}
	if in.Current == nil {
		return nil, fmt.Errorf("%w: missing current value", domain.ErrValidation)
	}
	if in.Power == nil {
		return nil, fmt.Errorf("%w: missing power value", domain.ErrValidation)
	}

	rd := &domain.Reading{
		Voltage:     *in.Voltage,
		Current:     *in.Current,
		Power:       *in.Power,
		Energy:      in.Energy,
		Frequency:   in.Frequency,
		PowerFactor: in.PowerFactor,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.repos.InsertReading(rd); err != nil {
		return nil, err
	}
	log.Debug().Int64("id", rd.ID).Float64("power", rd.Power).Msg("reading saved")
	return rd, nil
}

// FromMQTT decodes a sensor-feed payload and ingests it.
func (s *ReadingService) FromMQTT(topic string, payload []byte) error {
	var in ReadingInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return err
	}
	_, err := s.Ingest(in)
	return err
}

type AlertService struct {
	repos *repository.Repos
}

func (s *AlertService) List(filter repository.AlertFilter) ([]domain.Alert, error) {
	return s.repos.ListAlerts(filter)
}

func (s *AlertService) Create(alertType, message string) (*domain.Alert, error) {
	if alertType == "" {
		return nil, fmt.Errorf("%w: missing alert type", domain.ErrValidation)
	}
	if message == "" {
		return nil, fmt.Errorf("%w: missing alert message", domain.ErrValidation)
	}

	a := &domain.Alert{
		Type:      alertType,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Resolved:  false,
	}
	if err := s.repos.InsertAlert(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AlertService) Resolve(id int64) error {
	return s.repos.ResolveAlert(id)
}

type AuthService struct {
	repos *repository.Repos
}

// Login verifies the credentials against the stored bcrypt digest. An
// unknown username and a wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: missing credentials", domain.ErrValidation)
	}

	u, err := s.repos.UserByName(username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}
