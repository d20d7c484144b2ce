package http

import "github.com/gin-gonic/gin"

// Register wires routes that need an authenticated identity.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.UpdateProfile)
	rg.GET("/history", h.GetHistory)
	rg.GET("/achievements", h.GetAchievements)
	rg.POST("/activities", h.RecordActivity)
}

// RegisterPublic wires routes that work without a session: device impact
// previews and the collection-point locator.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/devices", h.ListDeviceTypes)
	rg.GET("/devices/:type/estimate", h.GetDeviceEstimate)
	rg.GET("/collection-points", h.ListCollectionPoints)
}
