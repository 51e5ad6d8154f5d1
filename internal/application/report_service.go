package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/domain"
)

const (
	defaultTrendMonths = 6
	maxTrendMonths     = 24
)

// ReportService answers the owner dashboard queries. All heavy lifting
// happens in the store's SQL aggregates; this layer only validates ranges.
type ReportService struct {
	store ReportStore
}

// NewReportService creates a new ReportService.
func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// Summary returns the owner-wide headline numbers.
func (s *ReportService) Summary(ctx context.Context, ownerID uuid.UUID) (*ReportSummary, error) {
	return s.store.Summary(ctx, ownerID)
}

// Weekly returns the last seven days of booking counts and paid revenue,
// today included.
func (s *ReportService) Weekly(ctx context.Context, ownerID uuid.UUID) ([]DailyRevenue, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -6)
	return s.store.RevenueByDay(ctx, ownerID, from, to)
}

// RevenueByRoomType returns bookings and paid revenue grouped by room type.
func (s *ReportService) RevenueByRoomType(ctx context.Context, ownerID uuid.UUID) ([]RoomTypeRevenue, error) {
	return s.store.RevenueByRoomType(ctx, ownerID)
}

// Trend returns per-month bookings and paid revenue for the last N months.
// Zero means the default window.
func (s *ReportService) Trend(ctx context.Context, ownerID uuid.UUID, months int) ([]TrendPoint, error) {
	if months == 0 {
		months = defaultTrendMonths
	}
	if months < 1 || months > maxTrendMonths {
		return nil, domain.NewValidationError("trend window must be between 1 and 24 months")
	}
	return s.store.MonthlyTrend(ctx, ownerID, months)
}
