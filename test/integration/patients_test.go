package integration

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/patientreg/patientreg/internal/domain/patients"
	"github.com/patientreg/patientreg/internal/platform/db"
	"github.com/patientreg/patientreg/internal/platform/middleware"
	"github.com/patientreg/patientreg/pkg/client"
)

func newRegistrationService() *patients.Service {
	repo := patients.NewPatientRepo(globalDB.Pool)
	docs := patients.NewPatientDocRepo(globalDocs.Store.Collection(patients.DocCollection))
	return patients.NewService(repo, docs, zerolog.Nop())
}

// newRegistrationServer builds the HTTP surface the way the serve command
// does: echo with the detail-shaped error handler and the patient routes.
func newRegistrationServer() *httptest.Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler(zerolog.Nop())
	patients.NewHandler(newRegistrationService()).RegisterRoutes(e)
	return httptest.NewServer(e)
}

func TestRegister_WritesBothStores(t *testing.T) {
	ctx := context.Background()
	resetStores(t, ctx)

	svc := newRegistrationService()
	p, err := svc.Register(ctx, patients.Submission{
		Name: "John Doe", Age: 30, Gender: "male", Contact: "1234567890",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected non-zero id after register")
	}

	// Primary store row
	var name, gender, contact string
	var age int
	err = globalDB.Pool.QueryRow(ctx,
		"SELECT name, age, gender, contact FROM patients WHERE id = $1", p.ID).
		Scan(&name, &age, &gender, &contact)
	if err != nil {
		t.Fatalf("query primary row: %v", err)
	}
	if name != "John Doe" || age != 30 || gender != "male" || contact != "1234567890" {
		t.Errorf("primary row mismatch: %s %d %s %s", name, age, gender, contact)
	}

	// Secondary store document
	var doc patients.Document
	err = globalDocs.Store.Collection(patients.DocCollection).
		FindOne(ctx, bson.M{"patient_id": p.ID}).Decode(&doc)
	if err != nil {
		t.Fatalf("find secondary document: %v", err)
	}
	if doc.Name != "John Doe" || doc.Age != 30 || doc.Gender != "male" || doc.Contact != "1234567890" {
		t.Errorf("document mismatch: %+v", doc)
	}
	if doc.Source != patients.DocumentSource {
		t.Errorf("expected source %q, got %q", patients.DocumentSource, doc.Source)
	}
	if doc.RegisteredAt.IsZero() {
		t.Error("expected registered_at to be set")
	}
}

func TestRegister_InvalidSubmissionWritesNothing(t *testing.T) {
	ctx := context.Background()
	resetStores(t, ctx)

	svc := newRegistrationService()
	_, err := svc.Register(ctx, patients.Submission{
		Name: "", Age: 30, Gender: "male", Contact: "1234567890",
	})

	var ve *patients.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	var count int
	if err := globalDB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM patients").Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no primary rows, got %d", count)
	}

	docs, err := globalDocs.Store.Collection(patients.DocCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count documents: %v", err)
	}
	if docs != 0 {
		t.Errorf("expected no documents, got %d", docs)
	}
}

func TestRegistrationAPI(t *testing.T) {
	ctx := context.Background()
	resetStores(t, ctx)

	srv := newRegistrationServer()
	defer srv.Close()
	c := client.New(srv.URL)

	t.Run("Register", func(t *testing.T) {
		p, err := c.RegisterPatient(ctx, client.Submission{
			Name: "Jane Smith", Age: 45, Gender: "female", Contact: "jane@example.com",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if p.ID == 0 {
			t.Error("expected non-zero id")
		}
		if p.Name != "Jane Smith" {
			t.Errorf("expected Jane Smith, got %s", p.Name)
		}
	})

	t.Run("ValidationDetail", func(t *testing.T) {
		_, err := c.RegisterPatient(ctx, client.Submission{
			Name: "Jane Smith", Age: 0, Gender: "female", Contact: "jane@example.com",
		})
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.StatusCode != 400 {
			t.Errorf("expected 400, got %d", apiErr.StatusCode)
		}
		if apiErr.Detail != "age must be between 1 and 120" {
			t.Errorf("expected exact server detail, got %q", apiErr.Detail)
		}
	})

	t.Run("Get", func(t *testing.T) {
		p, err := c.GetPatient(ctx, 1)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if p.Name != "Jane Smith" {
			t.Errorf("expected Jane Smith, got %s", p.Name)
		}
	})

	t.Run("GetNotFound", func(t *testing.T) {
		_, err := c.GetPatient(ctx, 999999)
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.StatusCode != 404 {
			t.Errorf("expected 404, got %d", apiErr.StatusCode)
		}
		if apiErr.Detail != "Patient not found" {
			t.Errorf("expected 'Patient not found', got %q", apiErr.Detail)
		}
	})

	t.Run("List", func(t *testing.T) {
		if _, err := c.RegisterPatient(ctx, client.Submission{
			Name: "Second Patient", Age: 60, Gender: "other", Contact: "555-0100",
		}); err != nil {
			t.Fatalf("register second: %v", err)
		}

		list, err := c.ListPatients(ctx, 0, 0)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 {
			t.Errorf("expected 2 patients, got %d", len(list))
		}
	})
}

func TestMigrations_Applied(t *testing.T) {
	ctx := context.Background()

	migrator := db.NewMigrator(globalDB.Pool, globalDB.MigrationsDir)
	statuses, err := migrator.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(statuses) == 0 {
		t.Fatal("expected at least one migration")
	}
	for _, s := range statuses {
		if !s.Applied {
			t.Errorf("migration %d (%s) not applied", s.Version, s.Name)
		}
		if s.AppliedAt == nil || s.AppliedAt.IsZero() {
			t.Errorf("migration %d missing applied_at", s.Version)
		}
	}

	// Re-running is a no-op.
	count, err := migrator.Up(ctx)
	if err != nil {
		t.Fatalf("re-run up: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 newly applied migrations, got %d", count)
	}
}

func TestPoolHealth(t *testing.T) {
	stats := db.GetPoolStats(globalDB.Pool)
	if !stats.Healthy {
		t.Error("expected healthy pool")
	}
	if stats.TotalConns == 0 {
		t.Error("expected at least one connection")
	}
}
