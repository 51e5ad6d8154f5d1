package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
)

// GormReportRepository answers the dashboard aggregates with SQL. Cancelled
// bookings are excluded from every revenue figure.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository.
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Summary returns the owner-wide headline numbers in one round trip per
// entity.
func (r *GormReportRepository) Summary(ctx context.Context, ownerID uuid.UUID) (*application.ReportSummary, error) {
	var summary application.ReportSummary

	if err := r.db.WithContext(ctx).Model(&RoomModel{}).
		Where("owner_id = ?", ownerID).
		Count(&summary.TotalRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&GuestModel{}).
		Where("owner_id = ?", ownerID).
		Count(&summary.TotalGuests).Error; err != nil {
		return nil, fmt.Errorf("failed to count guests: %w", err)
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	type bookingAgg struct {
		TotalBookings  int64
		ActiveBookings int64
		TotalRevenue   float64
		MonthRevenue   float64
		PendingRevenue float64
	}
	var agg bookingAgg
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("owner_id = ?", ownerID).
		Select(`
			COUNT(*) AS total_bookings,
			COUNT(*) FILTER (WHERE status IN ?) AS active_bookings,
			COALESCE(SUM(paid_amount) FILTER (WHERE status <> ?), 0) AS total_revenue,
			COALESCE(SUM(paid_amount) FILTER (WHERE status <> ? AND created_at >= ?), 0) AS month_revenue,
			COALESCE(SUM(total_amount - paid_amount) FILTER (WHERE status <> ? AND total_amount > paid_amount), 0) AS pending_revenue`,
			[]string{string(booking.StatusPending), string(booking.StatusCheckedIn)},
			string(booking.StatusCancelled),
			string(booking.StatusCancelled), monthStart,
			string(booking.StatusCancelled)).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}

	summary.TotalBookings = agg.TotalBookings
	summary.ActiveBookings = agg.ActiveBookings
	summary.TotalRevenue = agg.TotalRevenue
	summary.MonthRevenue = agg.MonthRevenue
	summary.PendingRevenue = agg.PendingRevenue
	return &summary, nil
}

// RevenueByDay returns per-day booking counts and paid revenue over the
// inclusive date range, keyed by creation date. Days without bookings are
// filled in with zeroes.
func (r *GormReportRepository) RevenueByDay(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]application.DailyRevenue, error) {
	type row struct {
		Day      time.Time
		Bookings int64
		Revenue  float64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("owner_id = ? AND status <> ?", ownerID, string(booking.StatusCancelled)).
		Where("created_at >= ? AND created_at < ?", booking.StartOfDay(from), booking.StartOfDay(to).AddDate(0, 0, 1)).
		Select("DATE_TRUNC('day', created_at) AS day, COUNT(*) AS bookings, COALESCE(SUM(paid_amount), 0) AS revenue").
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily revenue: %w", err)
	}

	byDay := make(map[time.Time]row, len(rows))
	for _, rw := range rows {
		byDay[booking.StartOfDay(rw.Day)] = rw
	}

	var result []application.DailyRevenue
	for day := booking.StartOfDay(from); !day.After(booking.StartOfDay(to)); day = day.AddDate(0, 0, 1) {
		point := application.DailyRevenue{Date: day}
		if rw, ok := byDay[day]; ok {
			point.Bookings = rw.Bookings
			point.Revenue = rw.Revenue
		}
		result = append(result, point)
	}
	return result, nil
}

// RevenueByRoomType returns bookings and paid revenue grouped by room type.
func (r *GormReportRepository) RevenueByRoomType(ctx context.Context, ownerID uuid.UUID) ([]application.RoomTypeRevenue, error) {
	var rows []application.RoomTypeRevenue
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("bookings.owner_id = ? AND bookings.status <> ?", ownerID, string(booking.StatusCancelled)).
		Select("rooms.room_type AS room_type, COUNT(*) AS bookings, COALESCE(SUM(bookings.paid_amount), 0) AS revenue").
		Group("rooms.room_type").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by room type: %w", err)
	}
	return rows, nil
}

// MonthlyTrend returns per-month bookings and paid revenue for the last N
// months, oldest first, with empty months zero-filled.
func (r *GormReportRepository) MonthlyTrend(ctx context.Context, ownerID uuid.UUID, months int) ([]application.TrendPoint, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	type row struct {
		Month    time.Time
		Bookings int64
		Revenue  float64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("owner_id = ? AND status <> ?", ownerID, string(booking.StatusCancelled)).
		Where("created_at >= ?", start).
		Select("DATE_TRUNC('month', created_at) AS month, COUNT(*) AS bookings, COALESCE(SUM(paid_amount), 0) AS revenue").
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly trend: %w", err)
	}

	byMonth := make(map[string]row, len(rows))
	for _, rw := range rows {
		byMonth[rw.Month.UTC().Format("2006-01")] = rw
	}

	result := make([]application.TrendPoint, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		point := application.TrendPoint{Month: month}
		if rw, ok := byMonth[month]; ok {
			point.Bookings = rw.Bookings
			point.Revenue = rw.Revenue
		}
		result = append(result, point)
	}
	return result, nil
}
