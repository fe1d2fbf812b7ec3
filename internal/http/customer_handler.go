package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/basic-scheduler/internal/application"
)

type customerService interface {
	CreateCustomer(ctx context.Context, params application.CreateCustomerParams) (application.Customer, error)
	UpdateCustomer(ctx context.Context, params application.UpdateCustomerParams) (application.Customer, error)
	DeleteCustomer(ctx context.Context, principal application.Principal, customerID int64) error
	GetCustomer(ctx context.Context, customerID int64) (application.Customer, error)
	ListCustomers(ctx context.Context) ([]application.Customer, error)
}

type CustomerHandler struct {
	service   customerService
	responder responder
}

func NewCustomerHandler(service customerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, responder: newResponder(logger)}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	customer, err := h.service.CreateCustomer(r.Context(), application.CreateCustomerParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, customerResponse{Customer: toCustomerDTO(customer)})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	customerID, ok := customerIDFromRequest(r)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCustomerID)
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	customer, err := h.service.UpdateCustomer(r.Context(), application.UpdateCustomerParams{
		Principal:  principal,
		CustomerID: customerID,
		Input:      req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, customerResponse{Customer: toCustomerDTO(customer)})
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	customerID, ok := customerIDFromRequest(r)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCustomerID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.DeleteCustomer(r.Context(), principal, customerID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	customerID, ok := customerIDFromRequest(r)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCustomerID)
		return
	}

	customer, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, customerResponse{Customer: toCustomerDTO(customer)})
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listCustomersResponse{Customers: toCustomerDTOs(customers)})
}

func customerIDFromRequest(r *http.Request) (int64, bool) {
	raw, ok := CustomerIDFromContext(r.Context())
	if !ok {
		return 0, false
	}
	return parsePathID(raw)
}

type customerRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	DivisionID int64  `json:"division_id"`
}

func (r customerRequest) toInput() application.CustomerInput {
	return application.CustomerInput{
		Name:       strings.TrimSpace(r.Name),
		Address:    strings.TrimSpace(r.Address),
		PostalCode: strings.TrimSpace(r.PostalCode),
		Phone:      strings.TrimSpace(r.Phone),
		DivisionID: r.DivisionID,
	}
}

type customerResponse struct {
	Customer customerDTO `json:"customer"`
}

type listCustomersResponse struct {
	Customers []customerDTO `json:"customers"`
}

type customerDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	DivisionID int64  `json:"division_id"`
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	UpdatedAt  string `json:"updated_at"`
	UpdatedBy  string `json:"updated_by"`
}

func toCustomerDTO(customer application.Customer) customerDTO {
	return customerDTO{
		ID:         customer.ID,
		Name:       customer.Name,
		Address:    customer.Address,
		PostalCode: customer.PostalCode,
		Phone:      customer.Phone,
		DivisionID: customer.DivisionID,
		CreatedAt:  customer.CreatedAt.UTC().Format(time.RFC3339),
		CreatedBy:  customer.CreatedBy,
		UpdatedAt:  customer.UpdatedAt.UTC().Format(time.RFC3339),
		UpdatedBy:  customer.UpdatedBy,
	}
}

func toCustomerDTOs(customers []application.Customer) []customerDTO {
	if len(customers) == 0 {
		return nil
	}
	out := make([]customerDTO, 0, len(customers))
	for _, customer := range customers {
		out = append(out, toCustomerDTO(customer))
	}
	return out
}
