package savings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"offerPilot/domain"
	"offerPilot/pkg/logger"

	"github.com/shopspring/decimal"
)

type RedemptionRepository interface {
	Create(ctx context.Context, redemption *domain.Redemption) error
	FindByUser(ctx context.Context, userID uint) ([]domain.Redemption, error)
}

// Service records offer redemptions and aggregates what users saved.
type Service struct {
	repo RedemptionRepository
}

func NewService(repo RedemptionRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RecordRedemption(ctx context.Context, redemption domain.Redemption) (domain.Redemption, error) {
	if err := ctx.Err(); err != nil {
		return domain.Redemption{}, fmt.Errorf("context error: %w", err)
	}

	if redemption.UserID == 0 {
		return domain.Redemption{}, errors.New("user_id is required")
	}
	if redemption.VendorID == "" {
		return domain.Redemption{}, errors.New("vendor_id is required")
	}
	if redemption.AmountSaved.IsNegative() || redemption.PaidAmount.IsNegative() {
		return domain.Redemption{}, errors.New("amounts must not be negative")
	}
	if redemption.RedeemedAt.IsZero() {
		redemption.RedeemedAt = time.Now()
	}

	if err := s.repo.Create(ctx, &redemption); err != nil {
		return domain.Redemption{}, fmt.Errorf("save redemption: %w", err)
	}

	logger.Debug("redemption recorded",
		"user_id", redemption.UserID,
		"vendor_id", redemption.VendorID,
		"saved", redemption.AmountSaved.String(),
	)

	return redemption, nil
}

// Summary aggregates a user's redemptions into totals, a by-vendor
// leaderboard, and a chronological monthly series.
func (s *Service) Summary(ctx context.Context, userID uint) (domain.SavingsSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.SavingsSummary{}, fmt.Errorf("context error: %w", err)
	}

	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return domain.SavingsSummary{}, fmt.Errorf("load redemptions: %w", err)
	}

	summary := domain.SavingsSummary{
		TotalSaved:      decimal.Zero,
		TotalPaid:       decimal.Zero,
		RedemptionCount: len(rows),
		ByVendor:        []domain.VendorSavings{},
		ByMonth:         []domain.MonthlySavings{},
	}

	byVendor := make(map[string]decimal.Decimal)
	byMonth := make(map[string]decimal.Decimal)

	for _, r := range rows {
		summary.TotalSaved = summary.TotalSaved.Add(r.AmountSaved)
		summary.TotalPaid = summary.TotalPaid.Add(r.PaidAmount)

		byVendor[r.VendorName] = byVendor[r.VendorName].Add(r.AmountSaved)

		month := r.RedeemedAt.Format("2006-01")
		byMonth[month] = byMonth[month].Add(r.AmountSaved)
	}

	for name, saved := range byVendor {
		summary.ByVendor = append(summary.ByVendor, domain.VendorSavings{
			VendorName: name,
			Saved:      saved,
		})
	}
	sort.Slice(summary.ByVendor, func(i, j int) bool {
		if summary.ByVendor[i].Saved.Equal(summary.ByVendor[j].Saved) {
			return summary.ByVendor[i].VendorName < summary.ByVendor[j].VendorName
		}
		return summary.ByVendor[i].Saved.GreaterThan(summary.ByVendor[j].Saved)
	})

	for month, saved := range byMonth {
		summary.ByMonth = append(summary.ByMonth, domain.MonthlySavings{
			Month: month,
			Saved: saved,
		})
	}
	sort.Slice(summary.ByMonth, func(i, j int) bool {
		return summary.ByMonth[i].Month < summary.ByMonth[j].Month
	})

	return summary, nil
}
