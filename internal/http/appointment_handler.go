package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/basic-scheduler/internal/application"
)

type appointmentService interface {
	CreateAppointment(ctx context.Context, params application.CreateAppointmentParams) (application.Appointment, error)
	UpdateAppointment(ctx context.Context, params application.UpdateAppointmentParams) (application.Appointment, error)
	DeleteAppointment(ctx context.Context, principal application.Principal, appointmentID int64) error
	GetAppointment(ctx context.Context, appointmentID int64) (application.Appointment, error)
	ListAppointments(ctx context.Context, params application.ListAppointmentsParams) ([]application.Appointment, error)
	UpcomingAppointments(ctx context.Context, within time.Duration) ([]application.Appointment, error)
}

type AppointmentHandler struct {
	service   appointmentService
	responder responder
}

func NewAppointmentHandler(service appointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: service, responder: newResponder(logger)}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	appointment, err := h.service.CreateAppointment(r.Context(), application.CreateAppointmentParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	appointmentID, ok := appointmentIDFromRequest(r)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	appointment, err := h.service.UpdateAppointment(r.Context(), application.UpdateAppointmentParams{
		Principal:     principal,
		AppointmentID: appointmentID,
		Input:         req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	appointmentID, ok := appointmentIDFromRequest(r)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.DeleteAppointment(r.Context(), principal, appointmentID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	appointmentID, ok := appointmentIDFromRequest(r)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	appointment, err := h.service.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	params := buildListParams(r.URL.Query(), principal)

	appointments, err := h.service.ListAppointments(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAppointmentsResponse{Appointments: toAppointmentDTOs(appointments)})
}

func (h *AppointmentHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	within := 15 * time.Minute
	if raw := strings.TrimSpace(r.URL.Query().Get("within")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			within = parsed
		}
	}

	appointments, err := h.service.UpcomingAppointments(r.Context(), within)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAppointmentsResponse{Appointments: toAppointmentDTOs(appointments)})
}

func appointmentIDFromRequest(r *http.Request) (int64, bool) {
	raw, ok := AppointmentIDFromContext(r.Context())
	if !ok {
		return 0, false
	}
	return parsePathID(raw)
}

type appointmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Start       string `json:"start"`
	End         string `json:"end"`
	CustomerID  int64  `json:"customer_id"`
	UserID      int64  `json:"user_id"`
	ContactID   int64  `json:"contact_id"`
}

func (r appointmentRequest) toInput() application.AppointmentInput {
	return application.AppointmentInput{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Location:    r.Location,
		Type:        strings.TrimSpace(r.Type),
		Start:       parseTimestamp(r.Start),
		End:         parseTimestamp(r.End),
		CustomerID:  r.CustomerID,
		UserID:      r.UserID,
		ContactID:   r.ContactID,
	}
}

// parseTimestamp accepts RFC 3339 with or without sub-second precision. Zone
// offsets are preserved as instants; storage normalizes to UTC.
func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	return time.Time{}
}

type appointmentResponse struct {
	Appointment appointmentDTO `json:"appointment"`
}

type listAppointmentsResponse struct {
	Appointments []appointmentDTO `json:"appointments"`
}

type appointmentDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Start       string `json:"start"`
	End         string `json:"end"`
	CustomerID  int64  `json:"customer_id"`
	UserID      int64  `json:"user_id"`
	ContactID   int64  `json:"contact_id"`
	CreatedAt   string `json:"created_at"`
	CreatedBy   string `json:"created_by"`
	UpdatedAt   string `json:"updated_at"`
	UpdatedBy   string `json:"updated_by"`
}

func toAppointmentDTO(appointment application.Appointment) appointmentDTO {
	return appointmentDTO{
		ID:          appointment.ID,
		Title:       appointment.Title,
		Description: appointment.Description,
		Location:    appointment.Location,
		Type:        appointment.Type,
		Start:       appointment.Start.UTC().Format(time.RFC3339),
		End:         appointment.End.UTC().Format(time.RFC3339),
		CustomerID:  appointment.CustomerID,
		UserID:      appointment.UserID,
		ContactID:   appointment.ContactID,
		CreatedAt:   appointment.CreatedAt.UTC().Format(time.RFC3339),
		CreatedBy:   appointment.CreatedBy,
		UpdatedAt:   appointment.UpdatedAt.UTC().Format(time.RFC3339),
		UpdatedBy:   appointment.UpdatedBy,
	}
}

func toAppointmentDTOs(appointments []application.Appointment) []appointmentDTO {
	if len(appointments) == 0 {
		return nil
	}
	out := make([]appointmentDTO, 0, len(appointments))
	for _, appointment := range appointments {
		out = append(out, toAppointmentDTO(appointment))
	}
	return out
}

func buildListParams(values url.Values, principal application.Principal) application.ListAppointmentsParams {
	params := application.ListAppointmentsParams{Principal: principal}

	if raw := strings.TrimSpace(values.Get("customer_id")); raw != "" {
		if id, ok := parsePathID(raw); ok {
			params.CustomerID = id
		}
	}

	if after := strings.TrimSpace(values.Get("starts_after")); after != "" {
		if ts := parseTimestamp(after); !ts.IsZero() {
			params.StartsAfter = &ts
		}
	}
	if before := strings.TrimSpace(values.Get("ends_before")); before != "" {
		if ts := parseTimestamp(before); !ts.IsZero() {
			params.EndsBefore = &ts
		}
	}

	// Date-only references are anchored to noon UTC so the civil date survives
	// conversion into the business zone.
	if week := strings.TrimSpace(values.Get("week")); week != "" {
		if ts, err := time.Parse("2006-01-02", week); err == nil {
			params.Period = application.ListPeriodWeek
			params.PeriodReference = ts.Add(12 * time.Hour)
		}
	} else if month := strings.TrimSpace(values.Get("month")); month != "" {
		if ts, err := time.Parse("2006-01", month); err == nil {
			params.Period = application.ListPeriodMonth
			params.PeriodReference = ts.Add(12 * time.Hour)
		}
	}

	return params
}
