package patients

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DriftEvent describes a primary/secondary divergence: a patient row that
// exists in the relational store with no matching document copy. Emitted on
// every failed secondary write so reconciliation tooling outside this
// service can detect and repair the gap.
type DriftEvent struct {
	EventID    uuid.UUID
	PatientID  int64
	Collection string
	Reason     string
	OccurredAt time.Time
}

// DriftRecorder receives drift events. Implementations must not block the
// request path for long; recording failures are logged and dropped.
type DriftRecorder interface {
	RecordDrift(ctx context.Context, ev DriftEvent) error
}

// DriftRecorderFunc is a function adapter for DriftRecorder.
type DriftRecorderFunc func(ctx context.Context, ev DriftEvent) error

func (f DriftRecorderFunc) RecordDrift(ctx context.Context, ev DriftEvent) error {
	return f(ctx, ev)
}

type Service struct {
	patients PatientRepository
	docs     PatientDocRepository
	logger   zerolog.Logger
	drift    DriftRecorder
}

func NewService(patients PatientRepository, docs PatientDocRepository, logger zerolog.Logger) *Service {
	return &Service{patients: patients, docs: docs, logger: logger}
}

// SetDriftRecorder installs an optional sink for secondary-write failures.
// Without one, the structured warn log is the only drift signal.
func (s *Service) SetDriftRecorder(r DriftRecorder) {
	s.drift = r
}

// Register validates a submission and writes it to both stores. The
// relational store is the system of record: its insert must succeed and
// supplies the generated id. The document copy is best effort; a failure
// there is reported through the log and the drift recorder, never to the
// caller, who already holds a committed record.
func (s *Service) Register(ctx context.Context, sub Submission) (*Patient, error) {
	if violations := Validate(sub); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	p := &Patient{
		Name:    sub.Name,
		Age:     sub.Age,
		Gender:  sub.Gender,
		Contact: sub.Contact,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, &PrimaryStoreError{Err: err}
	}

	doc := p.Document(time.Now().UTC())
	if err := s.docs.Insert(ctx, doc); err != nil {
		s.reportDrift(ctx, p.ID, &SecondaryStoreError{Err: err})
	}

	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, &PrimaryStoreError{Err: err}
	}
	return p, nil
}

func (s *Service) ListPatients(ctx context.Context, skip, limit int) ([]*Patient, error) {
	patients, err := s.patients.List(ctx, skip, limit)
	if err != nil {
		return nil, &PrimaryStoreError{Err: err}
	}
	return patients, nil
}

// reportDrift logs a failed secondary write and forwards it to the drift
// recorder when one is installed. Never returns an error: by the time this
// runs the primary row is committed and the request must succeed.
func (s *Service) reportDrift(ctx context.Context, patientID int64, secErr *SecondaryStoreError) {
	ev := DriftEvent{
		EventID:    uuid.New(),
		PatientID:  patientID,
		Collection: DocCollection,
		Reason:     secErr.Error(),
		OccurredAt: time.Now().UTC(),
	}

	s.logger.Warn().
		Err(secErr).
		Str("drift_event_id", ev.EventID.String()).
		Int64("patient_id", patientID).
		Str("collection", ev.Collection).
		Msg("secondary store write failed; primary record kept")

	if s.drift == nil {
		return
	}
	if err := s.drift.RecordDrift(ctx, ev); err != nil {
		s.logger.Error().Err(err).
			Str("drift_event_id", ev.EventID.String()).
			Int64("patient_id", patientID).
			Msg("failed to record drift event")
	}
}
