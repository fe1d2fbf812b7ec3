package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
	"github.com/example/basic-scheduler/internal/scheduling"
)

// AppointmentService orchestrates validation and persistence for appointment
// operations. Booking decisions come from the scheduling validator; the
// service's job is to assemble the snapshot, map the verdict onto field
// errors, and keep audit fields honest.
type AppointmentService struct {
	appointments persistence.AppointmentRepository
	customers    persistence.CustomerRepository
	users        persistence.UserRepository
	contacts     persistence.ContactRepository
	validator    *scheduling.Validator
	now          func() time.Time
	logger       *slog.Logger

	// bookMu serializes validate-then-persist so two concurrent requests
	// cannot both pass overlap validation against the same stale snapshot.
	bookMu sync.Mutex
}

// NewAppointmentService wires dependencies for appointment operations.
func NewAppointmentService(
	appointments persistence.AppointmentRepository,
	customers persistence.CustomerRepository,
	users persistence.UserRepository,
	contacts persistence.ContactRepository,
	validator *scheduling.Validator,
	now func() time.Time,
	logger *slog.Logger,
) *AppointmentService {
	if now == nil {
		now = time.Now
	}
	return &AppointmentService{
		appointments: appointments,
		customers:    customers,
		users:        users,
		contacts:     contacts,
		validator:    validator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *AppointmentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AppointmentService", operation, attrs...)
}

// CreateAppointment validates the request and books the appointment.
func (s *AppointmentService) CreateAppointment(ctx context.Context, params CreateAppointmentParams) (appointment Appointment, err error) {
	if s == nil {
		return Appointment{}, fmt.Errorf("AppointmentService is nil")
	}

	logger := s.loggerWith(ctx, "CreateAppointment", "customer_id", params.Input.CustomerID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "appointment creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("appointment_id", appointment.ID).InfoContext(ctx, "appointment created")
	}()

	input := params.Input
	vErr := &ValidationError{}
	validateAppointmentCore(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}
	if err = s.ensureReferencesExist(ctx, input, vErr); err != nil {
		return
	}

	s.bookMu.Lock()
	defer s.bookMu.Unlock()

	if err = s.checkBookable(ctx, input, 0, vErr); err != nil {
		return
	}

	now := s.now()
	record := persistence.Appointment{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    input.Location,
		Type:        input.Type,
		Start:       input.Start,
		End:         input.End,
		CustomerID:  input.CustomerID,
		UserID:      input.UserID,
		ContactID:   input.ContactID,
		CreatedAt:   now,
		CreatedBy:   params.Principal.Username,
		UpdatedAt:   now,
		UpdatedBy:   params.Principal.Username,
	}

	persisted, err := s.appointments.CreateAppointment(ctx, record)
	if err != nil {
		err = mapAppointmentRepoError(err)
		return
	}
	appointment = appointmentFromPersistence(persisted)
	return
}

// UpdateAppointment re-validates the full interval, excluding the
// appointment's own stored slot from overlap detection.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, params UpdateAppointmentParams) (appointment Appointment, err error) {
	if s == nil {
		return Appointment{}, fmt.Errorf("AppointmentService is nil")
	}

	logger := s.loggerWith(ctx, "UpdateAppointment", "appointment_id", params.AppointmentID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "appointment update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment updated")
	}()

	existing, err := s.appointments.GetAppointment(ctx, params.AppointmentID)
	if err != nil {
		err = mapAppointmentRepoError(err)
		return
	}

	input := params.Input
	vErr := &ValidationError{}
	validateAppointmentCore(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}
	if err = s.ensureReferencesExist(ctx, input, vErr); err != nil {
		return
	}

	s.bookMu.Lock()
	defer s.bookMu.Unlock()

	if err = s.checkBookable(ctx, input, existing.ID, vErr); err != nil {
		return
	}

	updated := existing
	updated.Title = strings.TrimSpace(input.Title)
	updated.Description = input.Description
	updated.Location = input.Location
	updated.Type = input.Type
	updated.Start = input.Start
	updated.End = input.End
	updated.CustomerID = input.CustomerID
	updated.UserID = input.UserID
	updated.ContactID = input.ContactID
	updated.UpdatedAt = s.now()
	updated.UpdatedBy = params.Principal.Username

	if err = s.appointments.UpdateAppointment(ctx, updated); err != nil {
		err = mapAppointmentRepoError(err)
		return
	}
	appointment = appointmentFromPersistence(updated)
	return
}

// DeleteAppointment removes an appointment.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, principal Principal, appointmentID int64) error {
	if s == nil {
		return fmt.Errorf("AppointmentService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteAppointment", "appointment_id", appointmentID)
	if err := s.appointments.DeleteAppointment(ctx, appointmentID); err != nil {
		mapped := mapAppointmentRepoError(err)
		logger.ErrorContext(ctx, "appointment deletion failed", "error", mapped, "error_kind", ErrorKind(mapped))
		return mapped
	}
	logger.InfoContext(ctx, "appointment deleted", "deleted_by", principal.Username)
	return nil
}

// GetAppointment fetches one appointment.
func (s *AppointmentService) GetAppointment(ctx context.Context, appointmentID int64) (Appointment, error) {
	if s == nil {
		return Appointment{}, fmt.Errorf("AppointmentService is nil")
	}
	record, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return Appointment{}, mapAppointmentRepoError(err)
	}
	return appointmentFromPersistence(record), nil
}

// ListAppointments enumerates appointments matching the params, ordered by
// start time.
func (s *AppointmentService) ListAppointments(ctx context.Context, params ListAppointmentsParams) ([]Appointment, error) {
	if s == nil {
		return nil, fmt.Errorf("AppointmentService is nil")
	}

	filter := persistence.AppointmentFilter{
		CustomerID:  params.CustomerID,
		StartsAfter: params.StartsAfter,
		EndsBefore:  params.EndsBefore,
	}
	if params.Period != ListPeriodNone {
		reference := params.PeriodReference
		if reference.IsZero() {
			reference = s.now()
		}
		start, end := s.periodRange(params.Period, reference)
		if filter.StartsAfter == nil {
			filter.StartsAfter = &start
		}
		if filter.EndsBefore == nil {
			filter.EndsBefore = &end
		}
	}

	records, err := s.appointments.ListAppointments(ctx, filter)
	if err != nil {
		return nil, mapAppointmentRepoError(err)
	}
	appointments := make([]Appointment, 0, len(records))
	for _, record := range records {
		appointments = append(appointments, appointmentFromPersistence(record))
	}
	return appointments, nil
}

// UpcomingAppointments returns appointments starting within the given window
// from now, for the sign-in reminder.
func (s *AppointmentService) UpcomingAppointments(ctx context.Context, within time.Duration) ([]Appointment, error) {
	if s == nil {
		return nil, fmt.Errorf("AppointmentService is nil")
	}
	if within <= 0 {
		within = 15 * time.Minute
	}

	now := s.now()
	records, err := s.appointments.ListAppointments(ctx, persistence.AppointmentFilter{StartsAfter: &now})
	if err != nil {
		return nil, mapAppointmentRepoError(err)
	}

	horizon := now.Add(within)
	var upcoming []Appointment
	for _, record := range records {
		if record.Start.After(horizon) {
			continue
		}
		upcoming = append(upcoming, appointmentFromPersistence(record))
	}
	return upcoming, nil
}

// DeleteAppointmentsForCustomer removes every appointment of one customer.
// CustomerService calls this before deleting the customer itself.
func (s *AppointmentService) DeleteAppointmentsForCustomer(ctx context.Context, customerID int64) error {
	if s == nil {
		return fmt.Errorf("AppointmentService is nil")
	}
	if err := s.appointments.DeleteAppointmentsForCustomer(ctx, customerID); err != nil {
		return mapAppointmentRepoError(err)
	}
	return nil
}

// checkBookable snapshots the customer's appointments and asks the validator
// for a verdict, translating a rejection into field errors. Callers hold
// bookMu.
func (s *AppointmentService) checkBookable(ctx context.Context, input AppointmentInput, excludeID int64, vErr *ValidationError) error {
	records, err := s.appointments.ListAppointments(ctx, persistence.AppointmentFilter{CustomerID: input.CustomerID})
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		return err
	}

	snapshot := make([]scheduling.Appointment, 0, len(records))
	for _, record := range records {
		snapshot = append(snapshot, scheduling.Appointment{
			ID:         record.ID,
			CustomerID: record.CustomerID,
			Interval:   scheduling.Interval{Start: record.Start, End: record.End},
		})
	}

	candidate := scheduling.Interval{Start: input.Start, End: input.End}
	decision := s.validator.Validate(candidate, input.CustomerID, excludeID, snapshot)
	if decision.Allowed {
		return nil
	}

	switch decision.Reason {
	case scheduling.ReasonInvalidOrdering:
		vErr.add("time", "start must be before end")
	case scheduling.ReasonOutsideBusinessHours:
		hours := s.validator.Hours()
		vErr.add("business_hours", fmt.Sprintf(
			"appointments must be scheduled on a single day between %s and %s (%s)",
			hours.Open, hours.Close, hours.Location))
	case scheduling.ReasonOverlap:
		vErr.add("overlap", fmt.Sprintf("appointment overlaps existing appointment %d for this customer", decision.ConflictID))
	}
	return vErr
}

func (s *AppointmentService) ensureReferencesExist(ctx context.Context, input AppointmentInput, vErr *ValidationError) error {
	if _, err := s.customers.GetCustomer(ctx, input.CustomerID); err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			return err
		}
		vErr.add("customer_id", "customer does not exist")
	}
	if _, err := s.users.GetUser(ctx, input.UserID); err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			return err
		}
		vErr.add("user_id", "user does not exist")
	}
	if _, err := s.contacts.GetContact(ctx, input.ContactID); err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			return err
		}
		vErr.add("contact_id", "contact does not exist")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// periodRange computes a civil week (Monday start) or month window in the
// business reference zone.
func (s *AppointmentService) periodRange(period ListPeriod, reference time.Time) (time.Time, time.Time) {
	loc := s.validator.Hours().Location
	local := reference.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	switch period {
	case ListPeriodWeek:
		offset := (int(dayStart.Weekday()) + 6) % 7
		start := dayStart.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case ListPeriodMonth:
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	default:
		return time.Time{}, time.Time{}
	}
}

func validateAppointmentCore(input AppointmentInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		vErr.add("description", "description is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		vErr.add("location", "location is required")
	}
	if strings.TrimSpace(input.Type) == "" {
		vErr.add("type", "type is required")
	}
	if input.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if input.End.IsZero() {
		vErr.add("end", "end is required")
	}
	if input.CustomerID <= 0 {
		vErr.add("customer_id", "customer is required")
	}
	if input.UserID <= 0 {
		vErr.add("user_id", "user is required")
	}
	if input.ContactID <= 0 {
		vErr.add("contact_id", "contact is required")
	}
}

func mapAppointmentRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("references", "related records are missing")
		return vErr
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("time", "start must be before end")
		return vErr
	}
	return err
}
