// team/team_routes.go
package team

import "github.com/gin-gonic/gin"

// RegisterTeamRoutes wires the team endpoints onto the given router group.
func RegisterTeamRoutes(rg *gin.RouterGroup, tc *TeamController) {
	teams := rg.Group("/teams")
	{
		teams.POST("", tc.CreateTeam)
		teams.POST("/join", tc.JoinTeam)
		teams.GET("/:id", tc.GetTeam)
		teams.PUT("/:id", tc.UpdateTeam)
		teams.DELETE("/:id", tc.DeleteTeam)
		teams.DELETE("/:id/members/:userId", tc.RemoveMember)
	}
}
