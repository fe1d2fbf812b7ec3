package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/basic-scheduler/internal/application"
)

type directoryService interface {
	GetContact(ctx context.Context, contactID int64) (application.Contact, error)
	ListContacts(ctx context.Context) ([]application.Contact, error)
	ListCountries(ctx context.Context) ([]application.Country, error)
	ListDivisions(ctx context.Context, countryID int64) ([]application.Division, error)
}

// DirectoryHandler serves the read-only reference data.
type DirectoryHandler struct {
	service   directoryService
	responder responder
}

func NewDirectoryHandler(service directoryService, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{service: service, responder: newResponder(logger)}
}

func (h *DirectoryHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	raw, ok := ContactIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidContactID)
		return
	}
	contactID, ok := parsePathID(raw)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidContactID)
		return
	}

	contact, err := h.service.GetContact(r.Context(), contactID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, contactResponse{Contact: toContactDTO(contact)})
}

func (h *DirectoryHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	contacts, err := h.service.ListContacts(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]contactDTO, 0, len(contacts))
	for _, contact := range contacts {
		out = append(out, toContactDTO(contact))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listContactsResponse{Contacts: out})
}

func (h *DirectoryHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	countries, err := h.service.ListCountries(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]countryDTO, 0, len(countries))
	for _, country := range countries {
		out = append(out, countryDTO{ID: country.ID, Name: country.Name})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listCountriesResponse{Countries: out})
}

func (h *DirectoryHandler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var countryID int64
	if raw := strings.TrimSpace(r.URL.Query().Get("country_id")); raw != "" {
		id, ok := parsePathID(raw)
		if !ok {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
			return
		}
		countryID = id
	}

	divisions, err := h.service.ListDivisions(r.Context(), countryID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]divisionDTO, 0, len(divisions))
	for _, division := range divisions {
		out = append(out, divisionDTO{ID: division.ID, Name: division.Name, CountryID: division.CountryID})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listDivisionsResponse{Divisions: out})
}

type contactDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toContactDTO(contact application.Contact) contactDTO {
	return contactDTO{ID: contact.ID, Name: contact.Name, Email: contact.Email}
}

type contactResponse struct {
	Contact contactDTO `json:"contact"`
}

type listContactsResponse struct {
	Contacts []contactDTO `json:"contacts"`
}

type countryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type listCountriesResponse struct {
	Countries []countryDTO `json:"countries"`
}

type divisionDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
}

type listDivisionsResponse struct {
	Divisions []divisionDTO `json:"divisions"`
}
