package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pitchbook/services/notification"
	"pitchbook/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement is handled by the CORS layer; tokens gate access.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	Hub *notification.Hub
}

func NewWSHandler(hub *notification.Hub) *WSHandler {
	return &WSHandler{Hub: hub}
}

// ConnectHandler handles GET /ws?token=...: upgrades the connection and
// registers it on the hub. Browsers cannot set headers on WebSocket
// dials, so the auth token rides in the query string.
func (h *WSHandler) ConnectHandler(c *gin.Context) {
	token := c.Query("token")
	userID, err := utils.ExtractIDFromToken(token)
	if err != nil || userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "a valid token query parameter is required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Error("WebSocket upgrade failed",
			zap.String("userID", userID), zap.Error(err))
		return
	}
	h.Hub.Register(userID, conn)
}
