package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/basic-scheduler/internal/application"
)

type reportService interface {
	AppointmentsByTypeMonth(ctx context.Context) ([]application.TypeMonthReportRow, error)
	ContactSchedule(ctx context.Context) ([]application.ContactScheduleRow, error)
	CustomerHours(ctx context.Context) ([]application.CustomerMinutesRow, error)
}

type ReportHandler struct {
	service   reportService
	responder responder
}

func NewReportHandler(service reportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{service: service, responder: newResponder(logger)}
}

func (h *ReportHandler) AppointmentsByTypeMonth(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rows, err := h.service.AppointmentsByTypeMonth(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]typeMonthRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, typeMonthRowDTO{
			Year:  row.Year,
			Month: row.Month.String(),
			Type:  row.Type,
			Count: row.Count,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, typeMonthReportResponse{Rows: out})
}

func (h *ReportHandler) ContactSchedule(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rows, err := h.service.ContactSchedule(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]contactScheduleRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, contactScheduleRowDTO{
			ContactID:     row.ContactID,
			ContactName:   row.ContactName,
			AppointmentID: row.AppointmentID,
			Title:         row.Title,
			Type:          row.Type,
			Description:   row.Description,
			Start:         row.Start.UTC().Format(time.RFC3339),
			End:           row.End.UTC().Format(time.RFC3339),
			CustomerID:    row.CustomerID,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, contactScheduleReportResponse{Rows: out})
}

func (h *ReportHandler) CustomerHours(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rows, err := h.service.CustomerHours(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]customerMinutesRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, customerMinutesRowDTO{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			TotalMinutes: row.TotalMinutes,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, customerMinutesReportResponse{Rows: out})
}

type typeMonthRowDTO struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type typeMonthReportResponse struct {
	Rows []typeMonthRowDTO `json:"rows"`
}

type contactScheduleRowDTO struct {
	ContactID     int64  `json:"contact_id"`
	ContactName   string `json:"contact_name"`
	AppointmentID int64  `json:"appointment_id"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	Start         string `json:"start"`
	End           string `json:"end"`
	CustomerID    int64  `json:"customer_id"`
}

type contactScheduleReportResponse struct {
	Rows []contactScheduleRowDTO `json:"rows"`
}

type customerMinutesRowDTO struct {
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	TotalMinutes int64  `json:"total_minutes"`
}

type customerMinutesReportResponse struct {
	Rows []customerMinutesRowDTO `json:"rows"`
}
