package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitchbook/utils"
)

// CSRFTokenHandler handles GET /csrf-token: issues a token the client
// echoes back in X-CSRF-Token on state-changing requests.
func CSRFTokenHandler(c *gin.Context) {
	token, err := utils.IssueCSRFToken(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to issue CSRF token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}
