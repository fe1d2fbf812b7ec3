package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/basic-scheduler/internal/persistence"
)

// ReportService runs the aggregate reports. The heavy lifting happens in SQL;
// the service only converts rows to the application view.
type ReportService struct {
	reports persistence.ReportRepository
	logger  *slog.Logger
}

func NewReportService(reports persistence.ReportRepository, logger *slog.Logger) *ReportService {
	return &ReportService{reports: reports, logger: defaultLogger(logger)}
}

// AppointmentsByTypeMonth counts appointments grouped by type and calendar
// month.
func (s *ReportService) AppointmentsByTypeMonth(ctx context.Context) ([]TypeMonthReportRow, error) {
	if s == nil {
		return nil, fmt.Errorf("ReportService is nil")
	}
	counts, err := s.reports.CountAppointmentsByTypeMonth(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]TypeMonthReportRow, 0, len(counts))
	for _, count := range counts {
		rows = append(rows, TypeMonthReportRow{
			Year:  count.Year,
			Month: count.Month,
			Type:  count.Type,
			Count: count.Count,
		})
	}
	return rows, nil
}

// ContactSchedule lists every appointment grouped under its contact, ordered
// by contact name and start time.
func (s *ReportService) ContactSchedule(ctx context.Context) ([]ContactScheduleRow, error) {
	if s == nil {
		return nil, fmt.Errorf("ReportService is nil")
	}
	entries, err := s.reports.ListContactSchedule(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]ContactScheduleRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ContactScheduleRow{
			ContactID:     entry.ContactID,
			ContactName:   entry.ContactName,
			AppointmentID: entry.AppointmentID,
			Title:         entry.Title,
			Type:          entry.Type,
			Description:   entry.Description,
			Start:         entry.Start,
			End:           entry.End,
			CustomerID:    entry.CustomerID,
		})
	}
	return rows, nil
}

// CustomerHours sums scheduled minutes per customer, busiest first.
func (s *ReportService) CustomerHours(ctx context.Context) ([]CustomerMinutesRow, error) {
	if s == nil {
		return nil, fmt.Errorf("ReportService is nil")
	}
	sums, err := s.reports.SumCustomerMinutes(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]CustomerMinutesRow, 0, len(sums))
	for _, sum := range sums {
		rows = append(rows, CustomerMinutesRow{
			CustomerID:   sum.CustomerID,
			CustomerName: sum.CustomerName,
			TotalMinutes: sum.TotalMinutes,
		})
	}
	return rows, nil
}
