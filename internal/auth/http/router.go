package http

import "github.com/gin-gonic/gin"

// Register wires the public auth routes; Protected wires the ones that
// require a verified identity.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", h.SignUp)
	rg.POST("/signin", h.SignIn)
	rg.POST("/password-reset", h.SendPasswordReset)
}

func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("/signout", h.SignOut)
	rg.PUT("/email", h.ChangeEmail)
	rg.PUT("/password", h.ChangePassword)
	rg.POST("/reauthenticate", h.Reauthenticate)
}
