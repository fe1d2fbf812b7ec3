package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/basic-scheduler/internal/persistence"
	"github.com/example/basic-scheduler/internal/testfixtures"
)

// The repositories are exercised through the testfixtures harness, which
// opens a migrated temporary database. Contacts, countries, and divisions are
// present from the seed migration; users, customers, and appointments are
// created per test.

func mustCreateUser(t *testing.T, ctx context.Context, repo persistence.UserRepository, opts ...testfixtures.UserOption) persistence.User {
	t.Helper()
	user, err := repo.CreateUser(ctx, testfixtures.NewUserFixture(opts...).Persistence())
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func mustCreateCustomer(t *testing.T, ctx context.Context, repo persistence.CustomerRepository, opts ...testfixtures.CustomerOption) persistence.Customer {
	t.Helper()
	customer, err := repo.CreateCustomer(ctx, testfixtures.NewCustomerFixture(opts...).Persistence())
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	return customer
}

func mustCreateAppointment(t *testing.T, ctx context.Context, repo persistence.AppointmentRepository, opts ...testfixtures.AppointmentOption) persistence.Appointment {
	t.Helper()
	appointment, err := repo.CreateAppointment(ctx, testfixtures.NewAppointmentFixture(opts...).Persistence())
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	return appointment
}
