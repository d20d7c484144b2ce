package domain

import (
	"time"

	"github.com/eleccycle/eleccycle-backend/internal/geo"
	"github.com/eleccycle/eleccycle-backend/internal/impact"
)

// UserProfile is the per-user document in the users collection. The
// cumulative counters are monotonically non-decreasing and are only ever
// mutated through atomic increments applied by the activity recorder.
type UserProfile struct {
	UserID          string           `json:"userId" firestore:"-"`
	Name            string           `json:"name" firestore:"name"`
	Email           string           `json:"email" firestore:"email"`
	Phone           string           `json:"phone,omitempty" firestore:"phone,omitempty"`
	Address         string           `json:"address,omitempty" firestore:"address,omitempty"`
	RecycledDevices int64            `json:"recycledDevices" firestore:"recycledDevices"`
	TotalPoints     int64            `json:"totalPoints" firestore:"totalPoints"`
	CO2Saved        float64          `json:"co2Saved" firestore:"co2Saved"`
	MaterialsSaved  impact.Materials `json:"materialsSaved" firestore:"materialsSaved"`
	CreatedAt       time.Time        `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// ContactUpdate carries the editable profile fields. Counters are
// deliberately absent: they cannot be written through profile updates.
type ContactUpdate struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// RecyclingActivity is one immutable record of a recycled device and the
// impact credited for it. The timestamp is assigned by the store on write.
type RecyclingActivity struct {
	ID         string           `json:"id" firestore:"-"`
	UserID     string           `json:"userId" firestore:"userId"`
	DeviceType string           `json:"deviceType" firestore:"deviceType"`
	Materials  impact.Materials `json:"materials" firestore:"materials"`
	Points     int64            `json:"points" firestore:"points"`
	CO2Saved   float64          `json:"co2Saved" firestore:"co2Saved"`
	Timestamp  time.Time        `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}

// CollectionPoint is a drop-off site for e-waste. Read-only from this
// service's perspective; provisioned out-of-band.
type CollectionPoint struct {
	ID             string         `json:"id" firestore:"-"`
	Name           string         `json:"name" firestore:"name"`
	Address        string         `json:"address" firestore:"address"`
	Location       geo.Coordinate `json:"location" firestore:"location"`
	OperatingHours string         `json:"operatingHours" firestore:"operatingHours"`
	ContactInfo    string         `json:"contactInfo,omitempty" firestore:"contactInfo,omitempty"`

	// DistanceKm is attached by the locator when a user coordinate is
	// supplied. Never persisted.
	DistanceKm *float64 `json:"distanceKm,omitempty" firestore:"-"`
}

// RecordOutcome reports how far a recycling write progressed. The activity
// append and the profile increment are separate store calls, so a partial
// result is possible and must stay visible to the caller.
type RecordOutcome string

const (
	// RecordApplied means both the activity and the profile increments
	// were written.
	RecordApplied RecordOutcome = "applied"
	// RecordActivityOnly means the activity was written but the profile
	// increment failed; the profile is under-credited until retried.
	RecordActivityOnly RecordOutcome = "activity_only"
	// RecordFailed means nothing was written.
	RecordFailed RecordOutcome = "failed"
)

// RecordResult is returned by the activity recorder.
type RecordResult struct {
	Outcome    RecordOutcome   `json:"outcome"`
	ActivityID string          `json:"activityId,omitempty"`
	Estimate   impact.Estimate `json:"estimate"`
}
