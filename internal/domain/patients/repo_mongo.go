package patients

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DocCollection is the document-store collection registration writes into.
const DocCollection = "patients"

// DriftCollection holds one document per failed secondary write, for
// reconciliation tooling to drain.
const DriftCollection = "registration_drift"

type patientDocRepoMongo struct {
	coll *mongo.Collection
}

func NewPatientDocRepo(coll *mongo.Collection) PatientDocRepository {
	return &patientDocRepoMongo{coll: coll}
}

func (r *patientDocRepoMongo) Insert(ctx context.Context, doc *Document) error {
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert patient document: %w", err)
	}
	return nil
}

type driftRecorderMongo struct {
	coll *mongo.Collection
}

// NewDriftRecorder returns a DriftRecorder that persists events into the
// document store, one document per failed secondary write.
func NewDriftRecorder(coll *mongo.Collection) DriftRecorder {
	return &driftRecorderMongo{coll: coll}
}

func (r *driftRecorderMongo) RecordDrift(ctx context.Context, ev DriftEvent) error {
	if _, err := r.coll.InsertOne(ctx, driftDocument(ev)); err != nil {
		return fmt.Errorf("insert drift event: %w", err)
	}
	return nil
}

// driftDocument flattens a DriftEvent for storage. The event id becomes a
// string so the document is readable without a UUID codec.
func driftDocument(ev DriftEvent) bson.M {
	return bson.M{
		"event_id":    ev.EventID.String(),
		"patient_id":  ev.PatientID,
		"collection":  ev.Collection,
		"reason":      ev.Reason,
		"occurred_at": ev.OccurredAt,
	}
}
