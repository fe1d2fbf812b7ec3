package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
)

// The stub repositories below keep everything in memory and implement just
// enough of the persistence contracts for service tests. They are not safe
// for concurrent use; tests that need concurrency guard access themselves.

type stubUserRepository struct {
	users  map[int64]persistence.User
	nextID int64

	createErr error
	getErr    error
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: make(map[int64]persistence.User), nextID: 1}
}

func (r *stubUserRepository) CreateUser(_ context.Context, user persistence.User) (persistence.User, error) {
	if r.createErr != nil {
		return persistence.User{}, r.createErr
	}
	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return persistence.User{}, persistence.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *stubUserRepository) UpdateUser(_ context.Context, user persistence.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepository) GetUser(_ context.Context, id int64) (persistence.User, error) {
	if r.getErr != nil {
		return persistence.User{}, r.getErr
	}
	user, ok := r.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (r *stubUserRepository) GetUserByUsername(_ context.Context, username string) (persistence.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

func (r *stubUserRepository) ListUsers(_ context.Context) ([]persistence.User, error) {
	users := make([]persistence.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *stubUserRepository) DeleteUser(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type stubCustomerRepository struct {
	customers map[int64]persistence.Customer
	nextID    int64
}

func newStubCustomerRepository() *stubCustomerRepository {
	return &stubCustomerRepository{customers: make(map[int64]persistence.Customer), nextID: 1}
}

func (r *stubCustomerRepository) CreateCustomer(_ context.Context, customer persistence.Customer) (persistence.Customer, error) {
	customer.ID = r.nextID
	r.nextID++
	r.customers[customer.ID] = customer
	return customer, nil
}

func (r *stubCustomerRepository) UpdateCustomer(_ context.Context, customer persistence.Customer) error {
	if _, ok := r.customers[customer.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *stubCustomerRepository) GetCustomer(_ context.Context, id int64) (persistence.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return persistence.Customer{}, persistence.ErrNotFound
	}
	return customer, nil
}

func (r *stubCustomerRepository) ListCustomers(_ context.Context) ([]persistence.Customer, error) {
	customers := make([]persistence.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customers = append(customers, customer)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return customers, nil
}

func (r *stubCustomerRepository) DeleteCustomer(_ context.Context, id int64) error {
	if _, ok := r.customers[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

type stubContactRepository struct {
	contacts map[int64]persistence.Contact
}

func newStubContactRepository() *stubContactRepository {
	return &stubContactRepository{contacts: map[int64]persistence.Contact{
		1: {ID: 1, Name: "Anika Costa", Email: "acoasta@company.com"},
		2: {ID: 2, Name: "Daniel Garcia", Email: "dgarcia@company.com"},
	}}
}

func (r *stubContactRepository) GetContact(_ context.Context, id int64) (persistence.Contact, error) {
	contact, ok := r.contacts[id]
	if !ok {
		return persistence.Contact{}, persistence.ErrNotFound
	}
	return contact, nil
}

func (r *stubContactRepository) ListContacts(_ context.Context) ([]persistence.Contact, error) {
	contacts := make([]persistence.Contact, 0, len(r.contacts))
	for _, contact := range r.contacts {
		contacts = append(contacts, contact)
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].Name < contacts[j].Name })
	return contacts, nil
}

type stubRegionRepository struct {
	countries []persistence.Country
	divisions map[int64]persistence.Division
}

func newStubRegionRepository() *stubRegionRepository {
	return &stubRegionRepository{
		countries: []persistence.Country{{ID: 1, Name: "U.S"}, {ID: 2, Name: "UK"}},
		divisions: map[int64]persistence.Division{
			6:   {ID: 6, Name: "New York", CountryID: 1},
			101: {ID: 101, Name: "England", CountryID: 2},
		},
	}
}

func (r *stubRegionRepository) ListCountries(_ context.Context) ([]persistence.Country, error) {
	return append([]persistence.Country(nil), r.countries...), nil
}

func (r *stubRegionRepository) GetDivision(_ context.Context, id int64) (persistence.Division, error) {
	division, ok := r.divisions[id]
	if !ok {
		return persistence.Division{}, persistence.ErrNotFound
	}
	return division, nil
}

func (r *stubRegionRepository) ListDivisions(_ context.Context, countryID int64) ([]persistence.Division, error) {
	var divisions []persistence.Division
	for _, division := range r.divisions {
		if countryID != 0 && division.CountryID != countryID {
			continue
		}
		divisions = append(divisions, division)
	}
	sort.Slice(divisions, func(i, j int) bool { return divisions[i].Name < divisions[j].Name })
	return divisions, nil
}

type stubAppointmentRepository struct {
	appointments map[int64]persistence.Appointment
	nextID       int64

	listErr error
}

func newStubAppointmentRepository() *stubAppointmentRepository {
	return &stubAppointmentRepository{appointments: make(map[int64]persistence.Appointment), nextID: 1}
}

func (r *stubAppointmentRepository) CreateAppointment(_ context.Context, appointment persistence.Appointment) (persistence.Appointment, error) {
	appointment.ID = r.nextID
	r.nextID++
	r.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (r *stubAppointmentRepository) UpdateAppointment(_ context.Context, appointment persistence.Appointment) error {
	if _, ok := r.appointments[appointment.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *stubAppointmentRepository) GetAppointment(_ context.Context, id int64) (persistence.Appointment, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return persistence.Appointment{}, persistence.ErrNotFound
	}
	return appointment, nil
}

func (r *stubAppointmentRepository) ListAppointments(_ context.Context, filter persistence.AppointmentFilter) ([]persistence.Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var appointments []persistence.Appointment
	for _, appointment := range r.appointments {
		if filter.CustomerID != 0 && appointment.CustomerID != filter.CustomerID {
			continue
		}
		if filter.StartsAfter != nil && appointment.Start.Before(*filter.StartsAfter) {
			continue
		}
		if filter.EndsBefore != nil && appointment.End.After(*filter.EndsBefore) {
			continue
		}
		appointments = append(appointments, appointment)
	}
	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].Start.Equal(appointments[j].Start) {
			return appointments[i].ID < appointments[j].ID
		}
		return appointments[i].Start.Before(appointments[j].Start)
	})
	return appointments, nil
}

func (r *stubAppointmentRepository) DeleteAppointment(_ context.Context, id int64) error {
	if _, ok := r.appointments[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *stubAppointmentRepository) DeleteAppointmentsForCustomer(_ context.Context, customerID int64) error {
	for id, appointment := range r.appointments {
		if appointment.CustomerID == customerID {
			delete(r.appointments, id)
		}
	}
	return nil
}

type stubSessionRepository struct {
	sessions map[string]persistence.Session

	createErr error
}

func newStubSessionRepository() *stubSessionRepository {
	return &stubSessionRepository{sessions: make(map[string]persistence.Session)}
}

func (r *stubSessionRepository) CreateSession(_ context.Context, session persistence.Session) (persistence.Session, error) {
	if r.createErr != nil {
		return persistence.Session{}, r.createErr
	}
	if _, ok := r.sessions[session.Token]; ok {
		return persistence.Session{}, persistence.ErrDuplicate
	}
	r.sessions[session.Token] = session
	return session, nil
}

func (r *stubSessionRepository) GetSession(_ context.Context, token string) (persistence.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (r *stubSessionRepository) RevokeSession(_ context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	r.sessions[token] = session
	return session, nil
}

func (r *stubSessionRepository) DeleteExpiredSessions(_ context.Context, reference time.Time) error {
	for token, session := range r.sessions {
		if !session.ExpiresAt.After(reference) {
			delete(r.sessions, token)
		}
	}
	return nil
}
