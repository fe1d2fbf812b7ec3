package sqlite

import (
	"context"
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
)

// ReportRepository implements persistence.ReportRepository with aggregate
// queries over the appointments table. Timestamps are RFC3339 text, so the
// year and month can be sliced straight out of the stored value.
type ReportRepository struct {
	pool *ConnectionPool
}

func NewReportRepository(pool *ConnectionPool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) CountAppointmentsByTypeMonth(ctx context.Context) ([]persistence.TypeMonthCount, error) {
	rows, err := r.pool.DB().QueryContext(ctx, `
		SELECT CAST(substr(start_at, 1, 4) AS INTEGER) AS year,
			CAST(substr(start_at, 6, 2) AS INTEGER) AS month,
			type,
			COUNT(*) AS total
		FROM appointments
		GROUP BY year, month, type
		ORDER BY year ASC, month ASC, type ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var counts []persistence.TypeMonthCount
	for rows.Next() {
		var row persistence.TypeMonthCount
		var month int
		if err := rows.Scan(&row.Year, &month, &row.Type, &row.Count); err != nil {
			return nil, mapError(err)
		}
		row.Month = time.Month(month)
		counts = append(counts, row)
	}
	return counts, rows.Err()
}

func (r *ReportRepository) ListContactSchedule(ctx context.Context) ([]persistence.ContactScheduleEntry, error) {
	rows, err := r.pool.DB().QueryContext(ctx, `
		SELECT c.id, c.name, a.id, a.title, a.type, a.description,
			a.start_at, a.end_at, a.customer_id
		FROM contacts c
		JOIN appointments a ON a.contact_id = c.id
		ORDER BY c.name ASC, a.start_at ASC, a.id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var entries []persistence.ContactScheduleEntry
	for rows.Next() {
		var entry persistence.ContactScheduleEntry
		var start, end string
		err := rows.Scan(
			&entry.ContactID,
			&entry.ContactName,
			&entry.AppointmentID,
			&entry.Title,
			&entry.Type,
			&entry.Description,
			&start,
			&end,
			&entry.CustomerID,
		)
		if err != nil {
			return nil, mapError(err)
		}
		if entry.Start, err = parseTime(start); err != nil {
			return nil, err
		}
		if entry.End, err = parseTime(end); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *ReportRepository) SumCustomerMinutes(ctx context.Context) ([]persistence.CustomerMinutes, error) {
	rows, err := r.pool.DB().QueryContext(ctx, `
		SELECT cu.id, cu.name,
			CAST(ROUND(SUM((julianday(a.end_at) - julianday(a.start_at)) * 1440)) AS INTEGER) AS minutes
		FROM customers cu
		JOIN appointments a ON a.customer_id = cu.id
		GROUP BY cu.id, cu.name
		ORDER BY minutes DESC, cu.name ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var totals []persistence.CustomerMinutes
	for rows.Next() {
		var row persistence.CustomerMinutes
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.TotalMinutes); err != nil {
			return nil, mapError(err)
		}
		totals = append(totals, row)
	}
	return totals, rows.Err()
}
