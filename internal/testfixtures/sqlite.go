package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/example/basic-scheduler/internal/persistence"
	"github.com/example/basic-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests. The database is migrated
// on creation, so seeded reference data (contacts, countries, divisions) is
// available.
type SQLiteHarness struct {
	Users        persistence.UserRepository
	Customers    persistence.CustomerRepository
	Contacts     persistence.ContactRepository
	Regions      persistence.RegionRepository
	Appointments persistence.AppointmentRepository
	Sessions     persistence.SessionRepository
	Reports      persistence.ReportRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness over a migrated temporary
// database file. Cleanup is registered with the provided testing.TB; calling
// Close earlier is allowed.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "scheduler.db")
	pool, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := sqlite.Migrate(context.Background(), pool, quiet); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Users:        sqlite.NewUserRepository(pool),
		Customers:    sqlite.NewCustomerRepository(pool),
		Contacts:     sqlite.NewContactRepository(pool),
		Regions:      sqlite.NewRegionRepository(pool),
		Appointments: sqlite.NewAppointmentRepository(pool),
		Sessions:     sqlite.NewSessionRepository(pool),
		Reports:      sqlite.NewReportRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
