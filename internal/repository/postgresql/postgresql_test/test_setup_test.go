package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *database.DB
	testDBErr   error
	testDBSetup sync.Once
)

// setupTestDB connects to TEST_DATABASE_URL, applies the migrations once and
// empties the tables. Tests are skipped when no database is configured.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBSetup.Do(func() {
		if testDBErr = database.RunMigrations(dsn); testDBErr != nil {
			return
		}
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, testDBErr)

	truncateAllTables(t)
	t.Cleanup(func() { truncateAllTables(t) })

	return testDB
}

func truncateAllTables(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(context.Background(), "TRUNCATE TABLE scan_event, employee, scantag, client CASCADE")
	require.NoError(t, err)
}

// Helper untuk membuat client untuk testing
func createTestClient(t *testing.T, ctx context.Context, email string, enabled bool) string {
	t.Helper()
	var clientID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO client (client_type, company_name, email, mypunctoo_enabled)
		VALUES ('CUSTOMER', 'Test Company', $1, $2)
		RETURNING client_id::text
	`, email, enabled).Scan(&clientID)
	require.NoError(t, err)
	return clientID
}

func createTestScanTag(t *testing.T, ctx context.Context, clientID string, status string, createdAt time.Time) string {
	t.Helper()
	var scanTagID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO scantag (client_id, status, created_at)
		VALUES ($1, $2, $3)
		RETURNING scantag_id::text
	`, clientID, status, createdAt).Scan(&scanTagID)
	require.NoError(t, err)
	return scanTagID
}

func createTestEmployee(t *testing.T, ctx context.Context, clientID string, firstName string, referenceMinutes *int, createdAt time.Time) string {
	t.Helper()
	var employeeID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO employee (client_id, first_name, last_name, referentieduur_minutes, created_at, updated_at)
		VALUES ($1, $2, 'Tester', $3, $4, $4)
		RETURNING employee_id::text
	`, clientID, firstName, referenceMinutes, createdAt).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}
