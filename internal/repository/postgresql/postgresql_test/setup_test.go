package postgresql_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

const testSchema = "timesheet_test"

// TestDatabaseSetup holds a pool bound to an isolated schema
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository integration tests")
	}

	u, err := url.Parse(dsn)
	if err != nil {
		t.Fatalf("invalid TEST_DATABASE_URL: %v", err)
	}
	q := u.Query()
	q.Set("search_path", testSchema)
	u.RawQuery = q.Encode()

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, u.String())
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.createSchema(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to create schema: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", testSchema))
		db.Close()
	})

	return setup
}

func (t *TestDatabaseSetup) createSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", testSchema),
		fmt.Sprintf("CREATE SCHEMA %s", testSchema),
		`CREATE TABLE employees (
			id uuid PRIMARY KEY,
			user_id uuid,
			company_id uuid NOT NULL,
			employee_code text NOT NULL,
			full_name text NOT NULL,
			hire_date date NOT NULL,
			resignation_date date,
			employment_status text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT NOW(),
			updated_at timestamptz NOT NULL DEFAULT NOW(),
			deleted_at timestamptz
		)`,
		`CREATE TABLE attendances (
			id uuid PRIMARY KEY,
			employee_id uuid NOT NULL REFERENCES employees(id),
			company_id uuid NOT NULL,
			date date NOT NULL,
			clock_in timestamptz NOT NULL,
			clock_out timestamptz,
			work_hours_in_minutes integer,
			notes text,
			status text
		)`,
		`CREATE TABLE leave_types (
			id uuid PRIMARY KEY,
			company_id uuid NOT NULL,
			name text NOT NULL
		)`,
		`CREATE TABLE leave_requests (
			id uuid PRIMARY KEY,
			employee_id uuid NOT NULL REFERENCES employees(id),
			leave_type_id uuid NOT NULL REFERENCES leave_types(id),
			start_date date NOT NULL,
			end_date date NOT NULL,
			status text NOT NULL,
			reason text
		)`,
		`CREATE TABLE holidays (
			id uuid PRIMARY KEY,
			company_id uuid NOT NULL,
			date date NOT NULL,
			name text NOT NULL,
			is_optional boolean NOT NULL DEFAULT false
		)`,
	}

	for _, stmt := range statements {
		if _, err := t.DB.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
