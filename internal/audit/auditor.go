package audit

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

// floatTolerance absorbs accumulated floating-point error in the CO2 and
// material sums; real drift from a lost increment is far larger.
const floatTolerance = 1e-6

type ProfileLister interface {
	ListAll(ctx context.Context) ([]domain.UserProfile, error)
}

type ActivityLister interface {
	ListByUser(ctx context.Context, userID string) ([]domain.RecyclingActivity, error)
}

// Drift is one detected mismatch between a profile counter and the sum of
// that user's activities.
type Drift struct {
	UserID       string  `json:"userId"`
	Field        string  `json:"field"`
	ProfileValue float64 `json:"profileValue"`
	ActivitySum  float64 `json:"activitySum"`
}

// Auditor verifies the invariant that each profile's cumulative counters
// equal the sum over that user's activities. It only reports; the write
// path owns correction via its partial-failure contract.
type Auditor struct {
	profiles   ProfileLister
	activities ActivityLister
	logger     *zap.Logger
}

func NewAuditor(profiles ProfileLister, activities ActivityLister, logger *zap.Logger) *Auditor {
	return &Auditor{
		profiles:   profiles,
		activities: activities,
		logger:     logger,
	}
}

// Run audits every profile and returns the drifts found. Each drift is also
// logged so the report survives even when the caller discards the result.
func (a *Auditor) Run(ctx context.Context) ([]Drift, error) {
	profiles, err := a.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}

	var drifts []Drift
	for i := range profiles {
		p := &profiles[i]

		activities, err := a.activities.ListByUser(ctx, p.UserID)
		if err != nil {
			return drifts, fmt.Errorf("audit user %s: %w", p.UserID, err)
		}

		drifts = append(drifts, a.compare(p, activities)...)
	}

	if len(drifts) == 0 {
		a.logger.Info("audit clean", zap.Int("profiles", len(profiles)))
	}

	return drifts, nil
}

func (a *Auditor) compare(p *domain.UserProfile, activities []domain.RecyclingActivity) []Drift {
	var points int64
	var co2, copper, gold, plastic, aluminum float64
	for _, act := range activities {
		points += act.Points
		co2 += act.CO2Saved
		copper += act.Materials.Copper
		gold += act.Materials.Gold
		plastic += act.Materials.Plastic
		aluminum += act.Materials.Aluminum
	}

	var drifts []Drift
	report := func(field string, profileValue, activitySum float64) {
		if math.Abs(profileValue-activitySum) <= floatTolerance {
			return
		}
		d := Drift{UserID: p.UserID, Field: field, ProfileValue: profileValue, ActivitySum: activitySum}
		drifts = append(drifts, d)
		a.logger.Warn("counter drift detected",
			zap.String("user_id", d.UserID),
			zap.String("field", d.Field),
			zap.Float64("profile_value", d.ProfileValue),
			zap.Float64("activity_sum", d.ActivitySum),
		)
	}

	report("recycledDevices", float64(p.RecycledDevices), float64(len(activities)))
	report("totalPoints", float64(p.TotalPoints), float64(points))
	report("co2Saved", p.CO2Saved, co2)
	report("materialsSaved.copper", p.MaterialsSaved.Copper, copper)
	report("materialsSaved.gold", p.MaterialsSaved.Gold, gold)
	report("materialsSaved.plastic", p.MaterialsSaved.Plastic, plastic)
	report("materialsSaved.aluminum", p.MaterialsSaved.Aluminum, aluminum)

	return drifts
}
