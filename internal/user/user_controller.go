// user/user_controller.go
package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devoapp/backend/internal/middleware"
	"github.com/devoapp/backend/pkg/responses"
)

// UserController handles profile and membership HTTP requests.
type UserController struct {
	memberships MembershipStore
}

// NewUserController creates a new user controller.
func NewUserController(memberships MembershipStore) *UserController {
	return &UserController{memberships: memberships}
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type SelectTeamRequest struct {
	TeamID string `json:"team_id" binding:"required"`
}

// GetMe godoc
// @Summary Get the authenticated user's profile
// @Description Returns the profile with memberships normalized into list form.
// @Tags Users
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=User}
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (uc *UserController) GetMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	u, err := uc.memberships.GetUser(c.Request.Context(), userID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", u)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} responses.SuccessResponse{data=User}
// @Security ApiKeyAuth
// @Router /users/me [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := uc.memberships.GetUser(c.Request.Context(), userID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	if req.DisplayName != "" {
		u.DisplayName = req.DisplayName
	}
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}

	if err := uc.memberships.UpdateProfile(c.Request.Context(), u); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated", u)
}

// GetMemberships godoc
// @Summary List the authenticated user's team memberships
// @Tags Users
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Membership}
// @Security ApiKeyAuth
// @Router /users/me/teams [get]
func (uc *UserController) GetMemberships(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	ms, err := uc.memberships.GetMemberships(c.Request.Context(), userID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", ms)
}

// SelectTeam godoc
// @Summary Select the active team
// @Description Marks one of the user's teams as the selected one. The user must be a member.
// @Tags Users
// @Accept json
// @Produce json
// @Param selection body SelectTeamRequest true "Team to select"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse "Not a member of the team"
// @Security ApiKeyAuth
// @Router /users/me/selected-team [put]
func (uc *UserController) SelectTeam(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	var req SelectTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := uc.memberships.SetSelected(c.Request.Context(), userID, req.TeamID); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team selected", gin.H{"selected_team_id": req.TeamID})
}
