package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eleccycle/eleccycle-backend/internal/impact"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

// ActivityService records recycling events. A record is two store calls:
// append the immutable activity, then atomically increment the profile
// counters. The two halves are not transactional, so the result reports
// exactly how far the write progressed.
type ActivityService struct {
	activities ActivityStore
	profiles   ProfileStore
	guard      WriteGuard
	logger     *zap.Logger
}

func NewActivityService(activities ActivityStore, profiles ProfileStore, guard WriteGuard, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activities: activities,
		profiles:   profiles,
		guard:      guard,
		logger:     logger,
	}
}

// Record persists one recycling event for the user and credits the impact
// estimate to their profile. The returned result is meaningful even when err
// is non-nil: RecordActivityOnly means the activity exists but the profile is
// under-credited, which callers must surface rather than report as success.
func (s *ActivityService) Record(ctx context.Context, userID string, est impact.Estimate) (*domain.RecordResult, error) {
	if userID == "" {
		return &domain.RecordResult{Outcome: domain.RecordFailed}, fmt.Errorf("user id required")
	}
	if err := validateEstimate(est); err != nil {
		return &domain.RecordResult{Outcome: domain.RecordFailed}, err
	}

	release, err := s.guard.Acquire(ctx, userID)
	if err != nil {
		return &domain.RecordResult{Outcome: domain.RecordFailed}, err
	}
	defer release()

	activity := &domain.RecyclingActivity{
		UserID:     userID,
		DeviceType: string(est.DeviceType),
		Materials:  est.Materials,
		Points:     est.Points,
		CO2Saved:   est.CO2SavedKg,
	}

	activityID, err := s.activities.Append(ctx, activity)
	if err != nil {
		return &domain.RecordResult{Outcome: domain.RecordFailed, Estimate: est},
			fmt.Errorf("record activity: %w", err)
	}

	if err := s.profiles.ApplyImpact(ctx, userID, est); err != nil {
		s.logger.Error("profile increment failed after activity append",
			zap.String("user_id", userID),
			zap.String("activity_id", activityID),
			zap.Error(err),
		)
		return &domain.RecordResult{
				Outcome:    domain.RecordActivityOnly,
				ActivityID: activityID,
				Estimate:   est,
			},
			fmt.Errorf("%w: %v", domain.ErrProfileUnderCredited, err)
	}

	s.logger.Info("recycling activity recorded",
		zap.String("user_id", userID),
		zap.String("activity_id", activityID),
		zap.String("device_type", string(est.DeviceType)),
		zap.Int64("points", est.Points),
	)

	return &domain.RecordResult{
		Outcome:    domain.RecordApplied,
		ActivityID: activityID,
		Estimate:   est,
	}, nil
}

func validateEstimate(est impact.Estimate) error {
	if est.Points < 0 || est.CO2SavedKg < 0 ||
		est.Materials.Copper < 0 || est.Materials.Gold < 0 ||
		est.Materials.Plastic < 0 || est.Materials.Aluminum < 0 {
		return domain.ErrNegativeImpact
	}
	return nil
}
