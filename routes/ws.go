package routes

import (
	"github.com/gin-gonic/gin"

	ws "local-services-server/websocket"
)

// RegisterWebSocketRoutes exposes the live job posting feed. Workers connected
// here receive a push whenever a customer creates a new posting.
func RegisterWebSocketRoutes(rg *gin.RouterGroup, hub *ws.Hub) {
	rg.GET("/ws", func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("role")
		ws.ServeWebSocket(hub, c.Writer, c.Request, userID, role)
	})
}
