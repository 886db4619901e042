package patients

import "time"

// DocumentSource tags every secondary-store document with the pathway that
// produced it, so downstream consumers can tell registration copies apart
// from records loaded by other tooling.
const DocumentSource = "registration-api"

// Submission is an unpersisted registration request. It carries exactly the
// fields a caller provides; nothing here is trusted until Validate has run.
type Submission struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

// Patient maps to the patients table. The ID is generated by the primary
// store at insert time and is the only system-assigned field.
type Patient struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Age     int    `db:"age" json:"age"`
	Gender  string `db:"gender" json:"gender"`
	Contact string `db:"contact" json:"contact"`
}

// Document is the denormalized copy written to the document store: the
// committed patient row plus a write timestamp and provenance tag. The two
// stores are not transactionally linked; after the write each owns its copy.
type Document struct {
	PatientID    int64     `bson:"patient_id" json:"patient_id"`
	Name         string    `bson:"name" json:"name"`
	Age          int       `bson:"age" json:"age"`
	Gender       string    `bson:"gender" json:"gender"`
	Contact      string    `bson:"contact" json:"contact"`
	RegisteredAt time.Time `bson:"registered_at" json:"registered_at"`
	Source       string    `bson:"source" json:"source"`
}

// Document derives the secondary-store representation of a committed patient
// row. registeredAt is assigned by the caller so the service controls the
// clock (and tests can pin it).
func (p *Patient) Document(registeredAt time.Time) *Document {
	return &Document{
		PatientID:    p.ID,
		Name:         p.Name,
		Age:          p.Age,
		Gender:       p.Gender,
		Contact:      p.Contact,
		RegisteredAt: registeredAt,
		Source:       DocumentSource,
	}
}
