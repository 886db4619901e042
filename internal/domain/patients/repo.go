package patients

import "context"

// PatientRepository is the primary (relational) store. Create assigns the
// generated id to the passed record on success.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context, skip, limit int) ([]*Patient, error)
}

// PatientDocRepository is the secondary (document) store. Insert failures
// are non-fatal to registration; the service decides what to do with them.
type PatientDocRepository interface {
	Insert(ctx context.Context, doc *Document) error
}
