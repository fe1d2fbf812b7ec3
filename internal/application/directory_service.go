package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/basic-scheduler/internal/persistence"
)

// DirectoryService reads the seeded reference data: contacts, countries and
// first-level divisions. All of it is read-only at runtime.
type DirectoryService struct {
	contacts persistence.ContactRepository
	regions  persistence.RegionRepository
	logger   *slog.Logger
}

func NewDirectoryService(contacts persistence.ContactRepository, regions persistence.RegionRepository, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		contacts: contacts,
		regions:  regions,
		logger:   defaultLogger(logger),
	}
}

// GetContact fetches one contact.
func (s *DirectoryService) GetContact(ctx context.Context, contactID int64) (Contact, error) {
	if s == nil {
		return Contact{}, fmt.Errorf("DirectoryService is nil")
	}
	record, err := s.contacts.GetContact(ctx, contactID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, err
	}
	return Contact{ID: record.ID, Name: record.Name, Email: record.Email}, nil
}

// ListContacts enumerates all contacts ordered by name.
func (s *DirectoryService) ListContacts(ctx context.Context) ([]Contact, error) {
	if s == nil {
		return nil, fmt.Errorf("DirectoryService is nil")
	}
	records, err := s.contacts.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	contacts := make([]Contact, 0, len(records))
	for _, record := range records {
		contacts = append(contacts, Contact{ID: record.ID, Name: record.Name, Email: record.Email})
	}
	return contacts, nil
}

// ListCountries enumerates the seeded countries.
func (s *DirectoryService) ListCountries(ctx context.Context) ([]Country, error) {
	if s == nil {
		return nil, fmt.Errorf("DirectoryService is nil")
	}
	records, err := s.regions.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	countries := make([]Country, 0, len(records))
	for _, record := range records {
		countries = append(countries, Country{ID: record.ID, Name: record.Name})
	}
	return countries, nil
}

// ListDivisions enumerates divisions, optionally filtered to one country.
// countryID zero means all divisions.
func (s *DirectoryService) ListDivisions(ctx context.Context, countryID int64) ([]Division, error) {
	if s == nil {
		return nil, fmt.Errorf("DirectoryService is nil")
	}
	records, err := s.regions.ListDivisions(ctx, countryID)
	if err != nil {
		return nil, err
	}
	divisions := make([]Division, 0, len(records))
	for _, record := range records {
		divisions = append(divisions, Division{ID: record.ID, Name: record.Name, CountryID: record.CountryID})
	}
	return divisions, nil
}
