package application

import (
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
)

// Principal identifies the authenticated actor performing an operation.
type Principal struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

// User is the application view of a staff account. The password hash never
// leaves the service layer.
type User struct {
	ID          int64
	Username    string
	DisplayName string
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserInput carries the mutable fields of a user. Password is the plaintext
// to hash; empty on update means "keep the current password".
type UserInput struct {
	Username    string
	DisplayName string
	Password    string
	IsAdmin     bool
}

// CreateUserParams bundles the acting principal with the user to create.
type CreateUserParams struct {
	Principal Principal
	Input     UserInput
}

// UpdateUserParams bundles the acting principal with the update payload.
type UpdateUserParams struct {
	Principal Principal
	UserID    int64
	Input     UserInput
}

// Customer is the application view of a customer record.
type Customer struct {
	ID         int64
	Name       string
	Address    string
	PostalCode string
	Phone      string
	DivisionID int64
	CreatedAt  time.Time
	CreatedBy  string
	UpdatedAt  time.Time
	UpdatedBy  string
}

// CustomerInput carries the mutable fields of a customer.
type CustomerInput struct {
	Name       string
	Address    string
	PostalCode string
	Phone      string
	DivisionID int64
}

// CreateCustomerParams bundles the acting principal with the customer to
// create.
type CreateCustomerParams struct {
	Principal Principal
	Input     CustomerInput
}

// UpdateCustomerParams bundles the acting principal with the update payload.
type UpdateCustomerParams struct {
	Principal  Principal
	CustomerID int64
	Input      CustomerInput
}

// Contact is a read-only directory entry.
type Contact struct {
	ID    int64
	Name  string
	Email string
}

// Country is seeded reference data.
type Country struct {
	ID   int64
	Name string
}

// Division is a first-level administrative division of a country.
type Division struct {
	ID        int64
	Name      string
	CountryID int64
}

// Appointment is the application view of an appointment. Start and End are
// absolute instants; presentation zones are a transport concern.
type Appointment struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Type        string
	Start       time.Time
	End         time.Time
	CustomerID  int64
	UserID      int64
	ContactID   int64
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
}

// AppointmentInput carries the mutable fields of an appointment.
type AppointmentInput struct {
	Title       string
	Description string
	Location    string
	Type        string
	Start       time.Time
	End         time.Time
	CustomerID  int64
	UserID      int64
	ContactID   int64
}

// CreateAppointmentParams bundles the acting principal with the appointment
// to create.
type CreateAppointmentParams struct {
	Principal Principal
	Input     AppointmentInput
}

// UpdateAppointmentParams bundles the acting principal with the update
// payload.
type UpdateAppointmentParams struct {
	Principal     Principal
	AppointmentID int64
	Input         AppointmentInput
}

// ListPeriod selects a calendar window for appointment listings, computed in
// the business reference zone.
type ListPeriod string

const (
	ListPeriodNone  ListPeriod = ""
	ListPeriodWeek  ListPeriod = "week"
	ListPeriodMonth ListPeriod = "month"
)

// ListAppointmentsParams narrows an appointment listing. CustomerID zero
// means all customers; PeriodReference defaults to the current time.
type ListAppointmentsParams struct {
	Principal       Principal
	CustomerID      int64
	Period          ListPeriod
	PeriodReference time.Time
	StartsAfter     *time.Time
	EndsBefore      *time.Time
}

// Session is the application view of an authentication session.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams carries login credentials.
type AuthenticateParams struct {
	Username string
	Password string
}

// AuthenticateResult is returned on successful login.
type AuthenticateResult struct {
	User    User
	Session Session
}

// TypeMonthReportRow is one row of the appointments-by-type-and-month report.
type TypeMonthReportRow struct {
	Year  int
	Month time.Month
	Type  string
	Count int
}

// ContactScheduleRow is one row of the per-contact schedule report.
type ContactScheduleRow struct {
	ContactID     int64
	ContactName   string
	AppointmentID int64
	Title         string
	Type          string
	Description   string
	Start         time.Time
	End           time.Time
	CustomerID    int64
}

// CustomerMinutesRow is one row of the scheduled-minutes-per-customer report.
type CustomerMinutesRow struct {
	CustomerID   int64
	CustomerName string
	TotalMinutes int64
}

func userFromPersistence(u persistence.User) User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func customerFromPersistence(c persistence.Customer) Customer {
	return Customer{
		ID:         c.ID,
		Name:       c.Name,
		Address:    c.Address,
		PostalCode: c.PostalCode,
		Phone:      c.Phone,
		DivisionID: c.DivisionID,
		CreatedAt:  c.CreatedAt,
		CreatedBy:  c.CreatedBy,
		UpdatedAt:  c.UpdatedAt,
		UpdatedBy:  c.UpdatedBy,
	}
}

func appointmentFromPersistence(a persistence.Appointment) Appointment {
	return Appointment{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		Type:        a.Type,
		Start:       a.Start,
		End:         a.End,
		CustomerID:  a.CustomerID,
		UserID:      a.UserID,
		ContactID:   a.ContactID,
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedBy,
		UpdatedAt:   a.UpdatedAt,
		UpdatedBy:   a.UpdatedBy,
	}
}

func sessionFromPersistence(s persistence.Session) Session {
	return Session{
		Token:     s.Token,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
}
