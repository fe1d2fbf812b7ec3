package testfixtures

import (
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
)

// referenceTime is a Monday mid-morning in America/New_York (June is EDT,
// UTC-4): 13:00 UTC reads as 09:00 New York. Fixtures hang off it so tests
// stay deterministic and inside business hours by default.
var referenceTime = time.Date(2026, time.June, 15, 13, 0, 0, 0, time.UTC)

// ReferenceTime returns the shared deterministic base time for fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- User fixtures -----------------------------

// UserFixture is a deterministic staff account for tests.
type UserFixture struct {
	ID           int64
	Username     string
	DisplayName  string
	IsAdmin      bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserOption mutates a UserFixture.
type UserOption func(*UserFixture)

func NewUserFixture(opts ...UserOption) UserFixture {
	fixture := UserFixture{
		ID:           1,
		Username:     "test",
		DisplayName:  "Test User",
		PasswordHash: "hash",
		CreatedAt:    referenceTime,
		UpdatedAt:    referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// Persistence materialises the fixture as a persistence model.
func (f UserFixture) Persistence() persistence.User {
	return persistence.User{
		ID:           f.ID,
		Username:     f.Username,
		DisplayName:  f.DisplayName,
		IsAdmin:      f.IsAdmin,
		PasswordHash: f.PasswordHash,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func WithUserID(id int64) UserOption {
	return func(f *UserFixture) { f.ID = id }
}

func WithUsername(username string) UserOption {
	return func(f *UserFixture) { f.Username = username }
}

func WithUserDisplayName(name string) UserOption {
	return func(f *UserFixture) { f.DisplayName = name }
}

func WithUserAdmin(isAdmin bool) UserOption {
	return func(f *UserFixture) { f.IsAdmin = isAdmin }
}

func WithUserPasswordHash(hash string) UserOption {
	return func(f *UserFixture) { f.PasswordHash = hash }
}

func WithUserTimestamps(createdAt, updatedAt time.Time) UserOption {
	return func(f *UserFixture) {
		f.CreatedAt = createdAt
		f.UpdatedAt = updatedAt
	}
}

// --------------------------- Customer fixtures ----------------------------

// CustomerFixture is a deterministic customer record for tests. The default
// division id points at seeded reference data.
type CustomerFixture struct {
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

// CustomerOption mutates a CustomerFixture.
type CustomerOption func(*CustomerFixture)

func NewCustomerFixture(opts ...CustomerOption) CustomerFixture {
	fixture := CustomerFixture{
		ID:         1,
		Name:       "Daddy Warbucks",
		Address:    "1919 Boardwalk",
		PostalCode: "01291",
		Phone:      "869-908-1875",
		DivisionID: 6,
		CreatedAt:  referenceTime,
		CreatedBy:  "test",
		UpdatedAt:  referenceTime,
		UpdatedBy:  "test",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// Persistence materialises the fixture as a persistence model.
func (f CustomerFixture) Persistence() persistence.Customer {
	return persistence.Customer{
		ID:         f.ID,
		Name:       f.Name,
		Address:    f.Address,
		PostalCode: f.PostalCode,
		Phone:      f.Phone,
		DivisionID: f.DivisionID,
		CreatedAt:  f.CreatedAt,
		CreatedBy:  f.CreatedBy,
		UpdatedAt:  f.UpdatedAt,
		UpdatedBy:  f.UpdatedBy,
	}
}

func WithCustomerID(id int64) CustomerOption {
	return func(f *CustomerFixture) { f.ID = id }
}

func WithCustomerName(name string) CustomerOption {
	return func(f *CustomerFixture) { f.Name = name }
}

func WithCustomerAddress(address string) CustomerOption {
	return func(f *CustomerFixture) { f.Address = address }
}

func WithCustomerPostalCode(code string) CustomerOption {
	return func(f *CustomerFixture) { f.PostalCode = code }
}

func WithCustomerPhone(phone string) CustomerOption {
	return func(f *CustomerFixture) { f.Phone = phone }
}

func WithCustomerDivision(divisionID int64) CustomerOption {
	return func(f *CustomerFixture) { f.DivisionID = divisionID }
}

func WithCustomerAudit(by string, at time.Time) CustomerOption {
	return func(f *CustomerFixture) {
		f.CreatedAt = at
		f.CreatedBy = by
		f.UpdatedAt = at
		f.UpdatedBy = by
	}
}

// -------------------------- Appointment fixtures --------------------------

// AppointmentFixture is a deterministic appointment for tests. The default
// interval is 13:00-14:00 UTC on the reference day, which reads as
// 09:00-10:00 in America/New_York.
type AppointmentFixture struct {
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

// AppointmentOption mutates an AppointmentFixture.
type AppointmentOption func(*AppointmentFixture)

func NewAppointmentFixture(opts ...AppointmentOption) AppointmentFixture {
	fixture := AppointmentFixture{
		ID:          1,
		Title:       "Planning Session",
		Description: "Quarterly planning",
		Location:    "Main Office",
		Type:        "Planning",
		Start:       referenceTime,
		End:         referenceTime.Add(time.Hour),
		CustomerID:  1,
		UserID:      1,
		ContactID:   1,
		CreatedAt:   referenceTime,
		CreatedBy:   "test",
		UpdatedAt:   referenceTime,
		UpdatedBy:   "test",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// Persistence materialises the fixture as a persistence model.
func (f AppointmentFixture) Persistence() persistence.Appointment {
	return persistence.Appointment{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Location:    f.Location,
		Type:        f.Type,
		Start:       f.Start,
		End:         f.End,
		CustomerID:  f.CustomerID,
		UserID:      f.UserID,
		ContactID:   f.ContactID,
		CreatedAt:   f.CreatedAt,
		CreatedBy:   f.CreatedBy,
		UpdatedAt:   f.UpdatedAt,
		UpdatedBy:   f.UpdatedBy,
	}
}

func WithAppointmentID(id int64) AppointmentOption {
	return func(f *AppointmentFixture) { f.ID = id }
}

func WithAppointmentTitle(title string) AppointmentOption {
	return func(f *AppointmentFixture) { f.Title = title }
}

func WithAppointmentType(kind string) AppointmentOption {
	return func(f *AppointmentFixture) { f.Type = kind }
}

func WithAppointmentInterval(start, end time.Time) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Start = start
		f.End = end
	}
}

func WithAppointmentCustomer(customerID int64) AppointmentOption {
	return func(f *AppointmentFixture) { f.CustomerID = customerID }
}

func WithAppointmentUser(userID int64) AppointmentOption {
	return func(f *AppointmentFixture) { f.UserID = userID }
}

func WithAppointmentContact(contactID int64) AppointmentOption {
	return func(f *AppointmentFixture) { f.ContactID = contactID }
}

func WithAppointmentAudit(by string, at time.Time) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.CreatedAt = at
		f.CreatedBy = by
		f.UpdatedAt = at
		f.UpdatedBy = by
	}
}

// ---------------------------- Session fixtures ----------------------------

// SessionFixture is a deterministic authentication session for tests.
type SessionFixture struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// SessionOption mutates a SessionFixture.
type SessionOption func(*SessionFixture)

func NewSessionFixture(opts ...SessionOption) SessionFixture {
	fixture := SessionFixture{
		Token:     "token-1",
		UserID:    1,
		ExpiresAt: referenceTime.Add(24 * time.Hour),
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// Persistence materialises the fixture as a persistence model.
func (f SessionFixture) Persistence() persistence.Session {
	return persistence.Session{
		Token:     f.Token,
		UserID:    f.UserID,
		ExpiresAt: f.ExpiresAt,
		CreatedAt: f.CreatedAt,
		RevokedAt: f.RevokedAt,
	}
}

func WithSessionToken(token string) SessionOption {
	return func(f *SessionFixture) { f.Token = token }
}

func WithSessionUserID(userID int64) SessionOption {
	return func(f *SessionFixture) { f.UserID = userID }
}

func WithSessionExpiresAt(expiresAt time.Time) SessionOption {
	return func(f *SessionFixture) { f.ExpiresAt = expiresAt }
}

func WithSessionCreatedAt(createdAt time.Time) SessionOption {
	return func(f *SessionFixture) { f.CreatedAt = createdAt }
}

func WithSessionRevokedAt(revokedAt time.Time) SessionOption {
	return func(f *SessionFixture) { f.RevokedAt = &revokedAt }
}
