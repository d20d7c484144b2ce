package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eleccycle/eleccycle-backend/internal/auth"
	"github.com/eleccycle/eleccycle-backend/internal/geo"
	"github.com/eleccycle/eleccycle-backend/internal/impact"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

// GetProfile returns the caller's profile. A missing profile is a distinct
// 404, not a transient failure: a new account legitimately has none until
// registration completes.
func (h *Handler) GetProfile(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), identity.UID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile edits contact fields. Counters are not editable here.
func (h *Handler) UpdateProfile(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profiles.UpdateContact(c.Request.Context(), identity.UID, domain.ContactUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetHistory returns the caller's activities, most recent first.
func (h *Handler) GetHistory(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	activities, err := h.profiles.History(c.Request.Context(), identity.UID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// GetAchievements returns milestone progress derived from the profile.
func (h *Handler) GetAchievements(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	achievements, err := h.profiles.Achievements(c.Request.Context(), identity.UID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// RecordActivity logs one recycled device and credits its impact. The
// response status tracks the outcome: a partial write is never presented
// as success.
func (h *Handler) RecordActivity(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req recordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.DeviceType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deviceType is required"})
		return
	}

	est := impact.ForDevice(impact.DeviceType(req.DeviceType))

	result, err := h.activities.Record(c.Request.Context(), identity.UID, est)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "result": result})
		case errors.Is(err, domain.ErrProfileUnderCredited):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "result": result})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "recording failed, retry", "result": result, "retryable": true})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// ListDeviceTypes returns the declared device categories with their fixed
// impact estimates, for display before a confirm.
func (h *Handler) ListDeviceTypes(c *gin.Context) {
	types := impact.DeviceTypes()
	estimates := make([]impact.Estimate, 0, len(types))
	for _, t := range types {
		estimates = append(estimates, impact.ForDevice(t))
	}
	c.JSON(http.StatusOK, gin.H{"devices": estimates})
}

// GetDeviceEstimate previews the impact for a single device type. Unknown
// types fall back to the "other" entry, mirroring the recorder.
func (h *Handler) GetDeviceEstimate(c *gin.Context) {
	est := impact.ForDevice(impact.DeviceType(c.Param("type")))
	c.JSON(http.StatusOK, gin.H{"estimate": est})
}

// ListCollectionPoints returns all drop-off sites, sorted by proximity when
// lat/lon query parameters are present. A store outage is a 502, never an
// empty list.
func (h *Handler) ListCollectionPoints(c *gin.Context) {
	userLoc, err := parseCoordinate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.locator.Locate(c.Request.Context(), userLoc)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"collectionPoints": points})
}

func parseCoordinate(c *gin.Context) (*geo.Coordinate, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("lat and lon must be supplied together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, errors.New("lon must be a number")
	}

	return &geo.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// respondStoreError distinguishes "no profile yet" from a transient store
// failure; the latter is retryable and must never be masked.
func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "profile_not_found"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "store unavailable, retry", "retryable": true})
}
