package persistence

import (
	"context"
	"time"
)

// UserRepository exposes CRUD operations for staff accounts. Create returns
// the stored record so callers see the database-assigned identifier.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// CustomerRepository exposes CRUD operations for customers.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer Customer) (Customer, error)
	UpdateCustomer(ctx context.Context, customer Customer) error
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// ContactRepository reads the seeded contact directory.
type ContactRepository interface {
	GetContact(ctx context.Context, id int64) (Contact, error)
	ListContacts(ctx context.Context) ([]Contact, error)
}

// RegionRepository reads the seeded country and division reference data.
type RegionRepository interface {
	ListCountries(ctx context.Context) ([]Country, error)
	GetDivision(ctx context.Context, id int64) (Division, error)
	// ListDivisions filters by country; countryID zero means all divisions.
	ListDivisions(ctx context.Context, countryID int64) ([]Division, error)
}

// AppointmentFilter narrows appointment queries. Zero values mean "no
// constraint".
type AppointmentFilter struct {
	CustomerID  int64
	StartsAfter *time.Time
	EndsBefore  *time.Time
}

// AppointmentRepository stores appointments.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment Appointment) (Appointment, error)
	UpdateAppointment(ctx context.Context, appointment Appointment) error
	GetAppointment(ctx context.Context, id int64) (Appointment, error)
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
	// DeleteAppointmentsForCustomer removes every appointment of one
	// customer; it is the first half of deleting the customer itself.
	DeleteAppointmentsForCustomer(ctx context.Context, customerID int64) error
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// ReportRepository runs the aggregate report queries.
type ReportRepository interface {
	CountAppointmentsByTypeMonth(ctx context.Context) ([]TypeMonthCount, error)
	ListContactSchedule(ctx context.Context) ([]ContactScheduleEntry, error)
	SumCustomerMinutes(ctx context.Context) ([]CustomerMinutes, error)
}
