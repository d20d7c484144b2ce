package http

import (
	"go.uber.org/zap"

	"github.com/eleccycle/eleccycle-backend/internal/recycling/service"
)

type Handler struct {
	profiles   *service.ProfileService
	activities *service.ActivityService
	locator    *service.LocatorService
	logger     *zap.Logger
}

func New(profiles *service.ProfileService, activities *service.ActivityService, locator *service.LocatorService, logger *zap.Logger) *Handler {
	return &Handler{
		profiles:   profiles,
		activities: activities,
		locator:    locator,
		logger:     logger,
	}
}

type recordActivityRequest struct {
	DeviceType string `json:"deviceType"`
}

type updateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}
