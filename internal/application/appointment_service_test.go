package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
	"github.com/example/basic-scheduler/internal/scheduling"
)

var testPrincipal = Principal{UserID: 1, Username: "test", IsAdmin: true}

// 2026-06-15 is a Monday; 13:00 UTC is 09:00 in New York (EDT).
var testNow = time.Date(2026, time.June, 15, 13, 0, 0, 0, time.UTC)

type appointmentFixture struct {
	service      *AppointmentService
	appointments *stubAppointmentRepository
	customers    *stubCustomerRepository
	users        *stubUserRepository
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	open, err := scheduling.ParseClock("08:00")
	if err != nil {
		t.Fatalf("parse open: %v", err)
	}
	closeAt, err := scheduling.ParseClock("22:00")
	if err != nil {
		t.Fatalf("parse close: %v", err)
	}
	validator := scheduling.NewValidator(scheduling.BusinessHours{Open: open, Close: closeAt, Location: loc})

	users := newStubUserRepository()
	if _, err := users.CreateUser(context.Background(), persistence.User{Username: "test", DisplayName: "Test User"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	customers := newStubCustomerRepository()
	for _, name := range []string{"Daddy Warbucks", "Lady Gaga", "Dudley Do-Right", "Wile E Coyote"} {
		if _, err := customers.CreateCustomer(context.Background(), persistence.Customer{Name: name, DivisionID: 6}); err != nil {
			t.Fatalf("seed customer: %v", err)
		}
	}
	appointments := newStubAppointmentRepository()

	service := NewAppointmentService(
		appointments,
		customers,
		users,
		newStubContactRepository(),
		validator,
		func() time.Time { return testNow },
		nil,
	)
	return &appointmentFixture{
		service:      service,
		appointments: appointments,
		customers:    customers,
		users:        users,
	}
}

// nyTime builds an instant from New York wall-clock time.
func nyTime(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func validInput(t *testing.T, customerID int64, startHour, startMin, endHour, endMin int) AppointmentInput {
	t.Helper()
	return AppointmentInput{
		Title:       "Planning Session",
		Description: "Quarterly planning",
		Location:    "Main office",
		Type:        "Planning",
		Start:       nyTime(t, 2026, time.June, 15, startHour, startMin),
		End:         nyTime(t, 2026, time.June, 15, endHour, endMin),
		CustomerID:  customerID,
		UserID:      1,
		ContactID:   1,
	}
}

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	message, ok := vErr.FieldErrors[field]
	if !ok {
		t.Fatalf("expected field error %q, got %v", field, vErr.FieldErrors)
	}
	return message
}

func TestCreateAppointment(t *testing.T) {
	t.Parallel()

	t.Run("books a valid appointment", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		appointment, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 9, 0, 17, 0),
		})
		if err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}
		if appointment.ID == 0 {
			t.Error("expected assigned id")
		}
		if appointment.CreatedBy != "test" || appointment.UpdatedBy != "test" {
			t.Errorf("audit fields = %q/%q, want test", appointment.CreatedBy, appointment.UpdatedBy)
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		_, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     AppointmentInput{},
		})
		for _, field := range []string{"title", "description", "location", "type", "start", "end", "customer_id", "user_id", "contact_id"} {
			fieldError(t, err, field)
		}
	})

	t.Run("rejects start after end", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		input := validInput(t, 1, 17, 0, 9, 0)
		_, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{Principal: testPrincipal, Input: input})
		fieldError(t, err, "time")
	})

	t.Run("rejects start before opening", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		input := validInput(t, 1, 7, 59, 9, 0)
		_, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{Principal: testPrincipal, Input: input})
		fieldError(t, err, "business_hours")
	})

	t.Run("rejects end past closing", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		input := validInput(t, 1, 21, 0, 22, 1)
		_, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{Principal: testPrincipal, Input: input})
		fieldError(t, err, "business_hours")
	})

	t.Run("rejects unknown references", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		input := validInput(t, 999, 9, 0, 10, 0)
		input.UserID = 999
		input.ContactID = 999
		_, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{Principal: testPrincipal, Input: input})
		fieldError(t, err, "customer_id")
		fieldError(t, err, "user_id")
		fieldError(t, err, "contact_id")
	})

	t.Run("rejects overlap and names the conflicting appointment", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		first, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 9, 0, 10, 0),
		})
		if err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}

		_, err = fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 9, 30, 10, 30),
		})
		message := fieldError(t, err, "overlap")
		if want := "appointment overlaps existing appointment 1 for this customer"; message != want {
			t.Errorf("overlap message = %q, want %q", message, want)
		}
		if first.ID != 1 {
			t.Errorf("first appointment id = %d, want 1", first.ID)
		}
	})

	t.Run("boundary touching is a conflict", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		if _, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 9, 0, 10, 0),
		}); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}

		_, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 10, 0, 11, 0),
		})
		fieldError(t, err, "overlap")
	})

	t.Run("other customers do not interfere", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		if _, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 9, 0, 10, 0),
		}); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}

		if _, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 2, 9, 0, 10, 0),
		}); err != nil {
			t.Errorf("same slot for another customer should book: %v", err)
		}
	})
}

func TestUpdateAppointment(t *testing.T) {
	t.Parallel()

	t.Run("shifting an appointment over its own slot succeeds", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		created, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 10, 0, 11, 0),
		})
		if err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}

		updated, err := fx.service.UpdateAppointment(context.Background(), UpdateAppointmentParams{
			Principal:     testPrincipal,
			AppointmentID: created.ID,
			Input:         validInput(t, 1, 10, 15, 11, 15),
		})
		if err != nil {
			t.Fatalf("UpdateAppointment: %v", err)
		}
		if got, want := updated.Start, nyTime(t, 2026, time.June, 15, 10, 15); !got.Equal(want) {
			t.Errorf("start = %v, want %v", got, want)
		}
	})

	t.Run("the same interval conflicts when booked as a new appointment", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		if _, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 10, 0, 11, 0),
		}); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}

		_, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 10, 15, 11, 15),
		})
		fieldError(t, err, "overlap")
	})

	t.Run("update still collides with other appointments", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		if _, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 9, 0, 10, 0),
		}); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}
		second, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 1, 11, 0, 12, 0),
		})
		if err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}

		_, err = fx.service.UpdateAppointment(context.Background(), UpdateAppointmentParams{
			Principal:     testPrincipal,
			AppointmentID: second.ID,
			Input:         validInput(t, 1, 9, 30, 10, 30),
		})
		message := fieldError(t, err, "overlap")
		if want := "appointment overlaps existing appointment 1 for this customer"; message != want {
			t.Errorf("overlap message = %q, want %q", message, want)
		}
	})

	t.Run("unknown appointment", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)

		_, err := fx.service.UpdateAppointment(context.Background(), UpdateAppointmentParams{
			Principal:     testPrincipal,
			AppointmentID: 42,
			Input:         validInput(t, 1, 9, 0, 10, 0),
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCustomerDaySchedule(t *testing.T) {
	t.Parallel()
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	book := func(customerID int64, startHour, startMin, endHour, endMin int) error {
		_, err := fx.service.CreateAppointment(ctx, CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, customerID, startHour, startMin, endHour, endMin),
		})
		return err
	}

	if err := book(3, 9, 0, 10, 0); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if err := book(3, 11, 0, 12, 0); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	// 10:00-11:00 touches both neighbors.
	if err := book(3, 10, 0, 11, 0); err == nil {
		t.Error("gap filler touching both neighbors should conflict")
	} else {
		fieldError(t, err, "overlap")
	}

	if err := book(3, 10, 1, 10, 59); err != nil {
		t.Errorf("strictly interior slot should book: %v", err)
	}

	if err := book(4, 10, 0, 11, 0); err != nil {
		t.Errorf("same slot for customer 4 should book: %v", err)
	}
}

func TestListAppointments(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, fx *appointmentFixture) {
		t.Helper()
		ctx := context.Background()
		intervals := []struct {
			day, startHour, endHour int
		}{
			{15, 9, 10},  // Monday of the reference week
			{19, 9, 10},  // Friday of the reference week
			{22, 9, 10},  // following Monday, same month
			{29, 9, 10},  // last Monday of June
		}
		for _, iv := range intervals {
			input := validInput(t, 1, iv.startHour, 0, iv.endHour, 0)
			input.Start = nyTime(t, 2026, time.June, iv.day, iv.startHour, 0)
			input.End = nyTime(t, 2026, time.June, iv.day, iv.endHour, 0)
			if _, err := fx.service.CreateAppointment(ctx, CreateAppointmentParams{Principal: testPrincipal, Input: input}); err != nil {
				t.Fatalf("seed appointment on day %d: %v", iv.day, err)
			}
		}
	}

	t.Run("week window", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)
		seed(t, fx)

		appointments, err := fx.service.ListAppointments(context.Background(), ListAppointmentsParams{
			Principal: testPrincipal,
			Period:    ListPeriodWeek,
		})
		if err != nil {
			t.Fatalf("ListAppointments: %v", err)
		}
		if len(appointments) != 2 {
			t.Fatalf("got %d appointments in week, want 2", len(appointments))
		}
	})

	t.Run("month window", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)
		seed(t, fx)

		appointments, err := fx.service.ListAppointments(context.Background(), ListAppointmentsParams{
			Principal: testPrincipal,
			Period:    ListPeriodMonth,
		})
		if err != nil {
			t.Fatalf("ListAppointments: %v", err)
		}
		if len(appointments) != 4 {
			t.Fatalf("got %d appointments in month, want 4", len(appointments))
		}
	})

	t.Run("customer filter", func(t *testing.T) {
		t.Parallel()
		fx := newAppointmentFixture(t)
		seed(t, fx)
		if _, err := fx.service.CreateAppointment(context.Background(), CreateAppointmentParams{
			Principal: testPrincipal,
			Input:     validInput(t, 2, 9, 0, 10, 0),
		}); err != nil {
			t.Fatalf("seed customer 2: %v", err)
		}

		appointments, err := fx.service.ListAppointments(context.Background(), ListAppointmentsParams{
			Principal:  testPrincipal,
			CustomerID: 2,
		})
		if err != nil {
			t.Fatalf("ListAppointments: %v", err)
		}
		if len(appointments) != 1 || appointments[0].CustomerID != 2 {
			t.Fatalf("got %v, want single appointment for customer 2", appointments)
		}
	})
}

func TestUpcomingAppointments(t *testing.T) {
	t.Parallel()
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	// Starts ten minutes after the fixed clock.
	soon := validInput(t, 1, 9, 10, 10, 0)
	if _, err := fx.service.CreateAppointment(ctx, CreateAppointmentParams{Principal: testPrincipal, Input: soon}); err != nil {
		t.Fatalf("seed soon: %v", err)
	}
	// Starts two hours later.
	later := validInput(t, 2, 11, 0, 12, 0)
	if _, err := fx.service.CreateAppointment(ctx, CreateAppointmentParams{Principal: testPrincipal, Input: later}); err != nil {
		t.Fatalf("seed later: %v", err)
	}

	upcoming, err := fx.service.UpcomingAppointments(ctx, 15*time.Minute)
	if err != nil {
		t.Fatalf("UpcomingAppointments: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("got %d upcoming appointments, want 1", len(upcoming))
	}
	if upcoming[0].CustomerID != 1 {
		t.Errorf("upcoming customer = %d, want 1", upcoming[0].CustomerID)
	}
}

func TestDeleteAppointment(t *testing.T) {
	t.Parallel()
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateAppointment(ctx, CreateAppointmentParams{
		Principal: testPrincipal,
		Input:     validInput(t, 1, 9, 0, 10, 0),
	})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	if err := fx.service.DeleteAppointment(ctx, testPrincipal, created.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	if _, err := fx.service.GetAppointment(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := fx.service.DeleteAppointment(ctx, testPrincipal, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
