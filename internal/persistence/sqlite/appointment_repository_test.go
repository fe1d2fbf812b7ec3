package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
	"github.com/example/basic-scheduler/internal/testfixtures"
)

func TestAppointmentRepository(t *testing.T) {
	t.Parallel()

	base := testfixtures.ReferenceTime()

	t.Run("create assigns an id and round-trips all fields", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()
		user := mustCreateUser(t, ctx, harness.Users)
		customer := mustCreateCustomer(t, ctx, harness.Customers)

		created := mustCreateAppointment(t, ctx, harness.Appointments,
			testfixtures.WithAppointmentCustomer(customer.ID),
			testfixtures.WithAppointmentUser(user.ID),
		)
		if created.ID == 0 {
			t.Fatal("expected a database-assigned id")
		}

		got, err := harness.Appointments.GetAppointment(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetAppointment: %v", err)
		}
		if got.Title != "Planning Session" || got.Type != "Planning" {
			t.Errorf("got title %q type %q", got.Title, got.Type)
		}
		if !got.Start.Equal(base) || !got.End.Equal(base.Add(time.Hour)) {
			t.Errorf("interval = [%v, %v], want [%v, %v]", got.Start, got.End, base, base.Add(time.Hour))
		}
		if got.CustomerID != customer.ID || got.UserID != user.ID || got.ContactID != 1 {
			t.Errorf("references = customer %d user %d contact %d", got.CustomerID, got.UserID, got.ContactID)
		}
		if got.CreatedBy != "test" || got.UpdatedBy != "test" {
			t.Errorf("audit = created by %q, updated by %q", got.CreatedBy, got.UpdatedBy)
		}
	})

	t.Run("update replaces mutable fields and keeps the creation audit", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()
		user := mustCreateUser(t, ctx, harness.Users)
		customer := mustCreateCustomer(t, ctx, harness.Customers)
		created := mustCreateAppointment(t, ctx, harness.Appointments,
			testfixtures.WithAppointmentCustomer(customer.ID),
			testfixtures.WithAppointmentUser(user.ID),
		)

		created.Title = "Debrief"
		created.Start = base.Add(2 * time.Hour)
		created.End = base.Add(3 * time.Hour)
		created.UpdatedAt = base.Add(time.Hour)
		created.UpdatedBy = "editor"
		if err := harness.Appointments.UpdateAppointment(ctx, created); err != nil {
			t.Fatalf("UpdateAppointment: %v", err)
		}

		got, err := harness.Appointments.GetAppointment(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetAppointment: %v", err)
		}
		if got.Title != "Debrief" || !got.Start.Equal(base.Add(2*time.Hour)) {
			t.Errorf("update not applied: title %q start %v", got.Title, got.Start)
		}
		if got.CreatedBy != "test" || !got.CreatedAt.Equal(base) {
			t.Errorf("creation audit changed: %q at %v", got.CreatedBy, got.CreatedAt)
		}
		if got.UpdatedBy != "editor" {
			t.Errorf("updated by = %q, want editor", got.UpdatedBy)
		}
	})

	t.Run("update of a missing appointment reports not found", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()
		mustCreateUser(t, ctx, harness.Users)
		mustCreateCustomer(t, ctx, harness.Customers)

		missing := testfixtures.NewAppointmentFixture(testfixtures.WithAppointmentID(999)).Persistence()
		if err := harness.Appointments.UpdateAppointment(ctx, missing); !errors.Is(err, persistence.ErrNotFound) {
			t.Errorf("UpdateAppointment error = %v, want ErrNotFound", err)
		}
	})

	t.Run("insert enforces the interval check constraint", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()
		user := mustCreateUser(t, ctx, harness.Users)
		customer := mustCreateCustomer(t, ctx, harness.Customers)

		degenerate := testfixtures.NewAppointmentFixture(
			testfixtures.WithAppointmentCustomer(customer.ID),
			testfixtures.WithAppointmentUser(user.ID),
			testfixtures.WithAppointmentInterval(base, base),
		).Persistence()
		_, err := harness.Appointments.CreateAppointment(ctx, degenerate)
		if !errors.Is(err, persistence.ErrConstraintViolation) {
			t.Errorf("CreateAppointment error = %v, want ErrConstraintViolation", err)
		}
	})

	t.Run("insert enforces foreign keys on references", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()
		user := mustCreateUser(t, ctx, harness.Users)

		orphan := testfixtures.NewAppointmentFixture(
			testfixtures.WithAppointmentCustomer(999),
			testfixtures.WithAppointmentUser(user.ID),
		).Persistence()
		_, err := harness.Appointments.CreateAppointment(ctx, orphan)
		if !errors.Is(err, persistence.ErrForeignKeyViolation) {
			t.Errorf("CreateAppointment error = %v, want ErrForeignKeyViolation", err)
		}
	})

	t.Run("list filters by customer and time bounds", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()
		user := mustCreateUser(t, ctx, harness.Users)
		first := mustCreateCustomer(t, ctx, harness.Customers)
		second := mustCreateCustomer(t, ctx, harness.Customers, testfixtures.WithCustomerName("Wile Coyote"))

		early := mustCreateAppointment(t, ctx, harness.Appointments,
			testfixtures.WithAppointmentCustomer(first.ID),
			testfixtures.WithAppointmentUser(user.ID),
			testfixtures.WithAppointmentInterval(base, base.Add(time.Hour)),
		)
		middle := mustCreateAppointment(t, ctx, harness.Appointments,
			testfixtures.WithAppointmentCustomer(second.ID),
			testfixtures.WithAppointmentUser(user.ID),
			testfixtures.WithAppointmentInterval(base.Add(2*time.Hour), base.Add(3*time.Hour)),
		)
		late := mustCreateAppointment(t, ctx, harness.Appointments,
			testfixtures.WithAppointmentCustomer(first.ID),
			testfixtures.WithAppointmentUser(user.ID),
			testfixtures.WithAppointmentInterval(base.Add(4*time.Hour), base.Add(5*time.Hour)),
		)

		assertIDs := func(t *testing.T, got []persistence.Appointment, want ...int64) {
			t.Helper()
			if len(got) != len(want) {
				t.Fatalf("got %d appointments, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i].ID != want[i] {
					t.Errorf("appointment[%d].ID = %d, want %d", i, got[i].ID, want[i])
				}
			}
		}

		all, err := harness.Appointments.ListAppointments(ctx, persistence.AppointmentFilter{})
		if err != nil {
			t.Fatalf("ListAppointments: %v", err)
		}
		assertIDs(t, all, early.ID, middle.ID, late.ID)

		byCustomer, err := harness.Appointments.ListAppointments(ctx, persistence.AppointmentFilter{CustomerID: first.ID})
		if err != nil {
			t.Fatalf("ListAppointments: %v", err)
		}
		assertIDs(t, byCustomer, early.ID, late.ID)

		startsAfter := base.Add(2 * time.Hour)
		fromMiddle, err := harness.Appointments.ListAppointments(ctx, persistence.AppointmentFilter{StartsAfter: &startsAfter})
		if err != nil {
			t.Fatalf("ListAppointments: %v", err)
		}
		assertIDs(t, fromMiddle, middle.ID, late.ID)

		endsBefore := base.Add(3 * time.Hour)
		untilMiddle, err := harness.Appointments.ListAppointments(ctx, persistence.AppointmentFilter{EndsBefore: &endsBefore})
		if err != nil {
			t.Fatalf("ListAppointments: %v", err)
		}
		assertIDs(t, untilMiddle, early.ID, middle.ID)
	})

	t.Run("delete removes the appointment once", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()
		user := mustCreateUser(t, ctx, harness.Users)
		customer := mustCreateCustomer(t, ctx, harness.Customers)
		created := mustCreateAppointment(t, ctx, harness.Appointments,
			testfixtures.WithAppointmentCustomer(customer.ID),
			testfixtures.WithAppointmentUser(user.ID),
		)

		if err := harness.Appointments.DeleteAppointment(ctx, created.ID); err != nil {
			t.Fatalf("DeleteAppointment: %v", err)
		}
		if _, err := harness.Appointments.GetAppointment(ctx, created.ID); !errors.Is(err, persistence.ErrNotFound) {
			t.Errorf("GetAppointment error = %v, want ErrNotFound", err)
		}
		if err := harness.Appointments.DeleteAppointment(ctx, created.ID); !errors.Is(err, persistence.ErrNotFound) {
			t.Errorf("second DeleteAppointment error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete for customer removes only that customer's appointments", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()
		user := mustCreateUser(t, ctx, harness.Users)
		doomed := mustCreateCustomer(t, ctx, harness.Customers)
		kept := mustCreateCustomer(t, ctx, harness.Customers, testfixtures.WithCustomerName("Wile Coyote"))

		mustCreateAppointment(t, ctx, harness.Appointments,
			testfixtures.WithAppointmentCustomer(doomed.ID),
			testfixtures.WithAppointmentUser(user.ID),
		)
		mustCreateAppointment(t, ctx, harness.Appointments,
			testfixtures.WithAppointmentCustomer(doomed.ID),
			testfixtures.WithAppointmentUser(user.ID),
			testfixtures.WithAppointmentInterval(base.Add(2*time.Hour), base.Add(3*time.Hour)),
		)
		survivor := mustCreateAppointment(t, ctx, harness.Appointments,
			testfixtures.WithAppointmentCustomer(kept.ID),
			testfixtures.WithAppointmentUser(user.ID),
			testfixtures.WithAppointmentInterval(base.Add(4*time.Hour), base.Add(5*time.Hour)),
		)

		if err := harness.Appointments.DeleteAppointmentsForCustomer(ctx, doomed.ID); err != nil {
			t.Fatalf("DeleteAppointmentsForCustomer: %v", err)
		}
		remaining, err := harness.Appointments.ListAppointments(ctx, persistence.AppointmentFilter{})
		if err != nil {
			t.Fatalf("ListAppointments: %v", err)
		}
		if len(remaining) != 1 || remaining[0].ID != survivor.ID {
			t.Errorf("remaining = %+v, want only appointment %d", remaining, survivor.ID)
		}

		// A customer without appointments is not an error.
		if err := harness.Appointments.DeleteAppointmentsForCustomer(ctx, doomed.ID); err != nil {
			t.Errorf("repeat DeleteAppointmentsForCustomer: %v", err)
		}
	})
}
