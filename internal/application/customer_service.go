package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
)

// CustomerService manages customer records. Deleting a customer also removes
// the customer's appointments first so the foreign key never fires.
type CustomerService struct {
	customers    persistence.CustomerRepository
	regions      persistence.RegionRepository
	appointments persistence.AppointmentRepository
	now          func() time.Time
	logger       *slog.Logger
}

// NewCustomerService wires dependencies for customer operations.
func NewCustomerService(
	customers persistence.CustomerRepository,
	regions persistence.RegionRepository,
	appointments persistence.AppointmentRepository,
	now func() time.Time,
	logger *slog.Logger,
) *CustomerService {
	if now == nil {
		now = time.Now
	}
	return &CustomerService{
		customers:    customers,
		regions:      regions,
		appointments: appointments,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *CustomerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CustomerService", operation, attrs...)
}

// CreateCustomer validates and stores a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, params CreateCustomerParams) (customer Customer, err error) {
	if s == nil {
		return Customer{}, fmt.Errorf("CustomerService is nil")
	}

	logger := s.loggerWith(ctx, "CreateCustomer")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "customer creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("customer_id", customer.ID).InfoContext(ctx, "customer created")
	}()

	input := params.Input
	vErr := &ValidationError{}
	validateCustomerCore(input, vErr)
	if !vErr.HasErrors() {
		if err = s.ensureDivisionExists(ctx, input.DivisionID, vErr); err != nil {
			return
		}
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	record := persistence.Customer{
		Name:       strings.TrimSpace(input.Name),
		Address:    strings.TrimSpace(input.Address),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Phone:      strings.TrimSpace(input.Phone),
		DivisionID: input.DivisionID,
		CreatedAt:  now,
		CreatedBy:  params.Principal.Username,
		UpdatedAt:  now,
		UpdatedBy:  params.Principal.Username,
	}

	persisted, err := s.customers.CreateCustomer(ctx, record)
	if err != nil {
		err = mapCustomerRepoError(err)
		return
	}
	customer = customerFromPersistence(persisted)
	return
}

// UpdateCustomer replaces the mutable fields of a customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, params UpdateCustomerParams) (customer Customer, err error) {
	if s == nil {
		return Customer{}, fmt.Errorf("CustomerService is nil")
	}

	logger := s.loggerWith(ctx, "UpdateCustomer", "customer_id", params.CustomerID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "customer update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "customer updated")
	}()

	existing, err := s.customers.GetCustomer(ctx, params.CustomerID)
	if err != nil {
		err = mapCustomerRepoError(err)
		return
	}

	input := params.Input
	vErr := &ValidationError{}
	validateCustomerCore(input, vErr)
	if !vErr.HasErrors() {
		if err = s.ensureDivisionExists(ctx, input.DivisionID, vErr); err != nil {
			return
		}
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Address = strings.TrimSpace(input.Address)
	updated.PostalCode = strings.TrimSpace(input.PostalCode)
	updated.Phone = strings.TrimSpace(input.Phone)
	updated.DivisionID = input.DivisionID
	updated.UpdatedAt = s.now()
	updated.UpdatedBy = params.Principal.Username

	if err = s.customers.UpdateCustomer(ctx, updated); err != nil {
		err = mapCustomerRepoError(err)
		return
	}
	customer = customerFromPersistence(updated)
	return
}

// DeleteCustomer removes a customer and all of the customer's appointments.
func (s *CustomerService) DeleteCustomer(ctx context.Context, principal Principal, customerID int64) error {
	if s == nil {
		return fmt.Errorf("CustomerService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteCustomer", "customer_id", customerID)

	if _, err := s.customers.GetCustomer(ctx, customerID); err != nil {
		mapped := mapCustomerRepoError(err)
		logger.ErrorContext(ctx, "customer deletion failed", "error", mapped, "error_kind", ErrorKind(mapped))
		return mapped
	}
	if err := s.appointments.DeleteAppointmentsForCustomer(ctx, customerID); err != nil {
		logger.ErrorContext(ctx, "customer deletion failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	if err := s.customers.DeleteCustomer(ctx, customerID); err != nil {
		mapped := mapCustomerRepoError(err)
		logger.ErrorContext(ctx, "customer deletion failed", "error", mapped, "error_kind", ErrorKind(mapped))
		return mapped
	}
	logger.InfoContext(ctx, "customer deleted", "deleted_by", principal.Username)
	return nil
}

// GetCustomer fetches one customer.
func (s *CustomerService) GetCustomer(ctx context.Context, customerID int64) (Customer, error) {
	if s == nil {
		return Customer{}, fmt.Errorf("CustomerService is nil")
	}
	record, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return Customer{}, mapCustomerRepoError(err)
	}
	return customerFromPersistence(record), nil
}

// ListCustomers enumerates all customers ordered by name.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]Customer, error) {
	if s == nil {
		return nil, fmt.Errorf("CustomerService is nil")
	}
	records, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, mapCustomerRepoError(err)
	}
	customers := make([]Customer, 0, len(records))
	for _, record := range records {
		customers = append(customers, customerFromPersistence(record))
	}
	return customers, nil
}

func (s *CustomerService) ensureDivisionExists(ctx context.Context, divisionID int64, vErr *ValidationError) error {
	if _, err := s.regions.GetDivision(ctx, divisionID); err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			return err
		}
		vErr.add("division_id", "division does not exist")
	}
	return nil
}

func validateCustomerCore(input CustomerInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		vErr.add("address", "address is required")
	}
	if strings.TrimSpace(input.PostalCode) == "" {
		vErr.add("postal_code", "postal code is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		vErr.add("phone", "phone number is required")
	}
	if input.DivisionID <= 0 {
		vErr.add("division_id", "division is required")
	}
}

func mapCustomerRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("division_id", "division does not exist")
		return vErr
	}
	return err
}
