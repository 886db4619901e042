package patients

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPatient_Document(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := &Patient{ID: 7, Name: "John Doe", Age: 30, Gender: "male", Contact: "1234567890"}

	doc := p.Document(at)

	if doc.PatientID != 7 {
		t.Errorf("PatientID = %d, want 7", doc.PatientID)
	}
	if doc.Name != "John Doe" || doc.Age != 30 || doc.Gender != "male" || doc.Contact != "1234567890" {
		t.Errorf("document fields do not match record: %+v", doc)
	}
	if !doc.RegisteredAt.Equal(at) {
		t.Errorf("RegisteredAt = %v, want %v", doc.RegisteredAt, at)
	}
	if doc.Source != "registration-api" {
		t.Errorf("Source = %q, want registration-api", doc.Source)
	}
}

func TestPatient_JSONShape(t *testing.T) {
	p := &Patient{ID: 1, Name: "Jane", Age: 25, Gender: "female", Contact: "555-0100"}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]interface{}
	json.Unmarshal(data, &m)
	for _, key := range []string{"id", "name", "age", "gender", "contact"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
}
