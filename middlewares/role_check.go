package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kantinku/kantin-app/utils"
)

// RequireRole menolak request yang role-nya tidak sesuai. Penolakan sengaja
// generik agar tidak membocorkan detail kepemilikan.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		if userRole != role {
			utils.RespondError(c, http.StatusForbidden, errors.New("unauthorized"))
			c.Abort()
			return
		}

		c.Next()
	}
}
