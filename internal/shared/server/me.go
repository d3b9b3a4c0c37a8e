package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ocr-backend/internal/shared/server/middleware"
	"ocr-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity.ID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	response := gin.H{
		"userId": identity.ID,
	}
	if identity.Email != "" {
		response["email"] = identity.Email
	}
	if identity.Name != "" {
		response["name"] = identity.Name
	}
	if identity.Picture != "" {
		response["picture"] = identity.Picture
	}

	respond.JSON(c, http.StatusOK, response)
}
