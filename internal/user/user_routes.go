// user/user_routes.go
package user

import "github.com/gin-gonic/gin"

// RegisterUserRoutes wires the profile and membership endpoints onto the given router group.
func RegisterUserRoutes(rg *gin.RouterGroup, uc *UserController) {
	users := rg.Group("/users/me")
	{
		users.GET("", uc.GetMe)
		users.PUT("", uc.UpdateProfile)
		users.GET("/teams", uc.GetMemberships)
		users.PUT("/selected-team", uc.SelectTeam)
	}
}
