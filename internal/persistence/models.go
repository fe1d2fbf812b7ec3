package persistence

import "time"

// User represents a staff account that can sign in and book appointments.
type User struct {
	ID           int64
	Username     string
	DisplayName  string
	IsAdmin      bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Customer represents a customer record appointments are booked against.
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

// Contact is a read-only directory entry appointments are assigned to.
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

// Appointment represents a stored appointment. Start and End are absolute
// instants; the storage layer persists them as UTC.
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

// Session represents an authentication session persisted for a user.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TypeMonthCount is one row of the appointments-by-type-and-month report.
type TypeMonthCount struct {
	Year  int
	Month time.Month
	Type  string
	Count int
}

// ContactScheduleEntry is one row of the per-contact schedule report.
type ContactScheduleEntry struct {
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

// CustomerMinutes is one row of the scheduled-minutes-per-customer report.
type CustomerMinutes struct {
	CustomerID   int64
	CustomerName string
	TotalMinutes int64
}
