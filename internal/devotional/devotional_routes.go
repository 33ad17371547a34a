// devotional/devotional_routes.go
package devotional

import "github.com/gin-gonic/gin"

// RegisterDevotionalRoutes wires the devotional and message endpoints onto the given router group.
func RegisterDevotionalRoutes(rg *gin.RouterGroup, dc *DevotionalController) {
	rg.GET("/teams/:id/devotional", dc.GetActive)

	devotionals := rg.Group("/devotionals")
	{
		devotionals.POST("", dc.CreateDevotional)
		devotionals.GET("/:id", dc.GetDevotional)
		devotionals.GET("/:id/week", dc.GetWeek)
		devotionals.GET("/:id/missed", dc.GetMissedDays)
		devotionals.POST("/:id/messages", dc.SendMessage)
		devotionals.GET("/:id/messages", dc.GetMessages)
	}

	rg.DELETE("/messages/:messageId", dc.DeleteMessage)
}
