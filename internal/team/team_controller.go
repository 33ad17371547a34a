// team/team_controller.go
package team

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devoapp/backend/internal/middleware"
	"github.com/devoapp/backend/pkg/responses"
)

// Lifecycle is the slice of the orchestrator the team endpoints need.
type Lifecycle interface {
	CreateTeam(ctx context.Context, callerID, name, leaderID, leaderName string) (*Team, error)
	JoinTeam(ctx context.Context, code, userID string) (*Team, error)
	RemoveMember(ctx context.Context, callerID, teamID, memberID string) error
	DeleteTeam(ctx context.Context, teamID, leaderID string) error
}

// TeamController handles team-related HTTP requests.
type TeamController struct {
	registry  Registry
	lifecycle Lifecycle
}

// NewTeamController creates a new team controller.
func NewTeamController(registry Registry, lifecycle Lifecycle) *TeamController {
	return &TeamController{registry: registry, lifecycle: lifecycle}
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

type JoinTeamRequest struct {
	Code string `json:"code" binding:"required"`
}

type UpdateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a team led by the authenticated user, with a unique join code and a default devotional.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team Creation Data"
// @Success 201 {object} responses.SuccessResponse{data=Team} "Team created successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := tc.lifecycle.CreateTeam(c.Request.Context(), userID, req.Name, userID, middleware.CurrentUserName(c))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", t)
}

// JoinTeam godoc
// @Summary Join a team by code
// @Description Adds the authenticated user to the team behind the join code.
// @Tags Teams
// @Accept json
// @Produce json
// @Param join body JoinTeamRequest true "Join code"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Joined team"
// @Failure 403 {object} responses.ErrorResponse "Already leader or member"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/join [post]
func (tc *TeamController) JoinTeam(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	var req JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := tc.lifecycle.JoinTeam(c.Request.Context(), req.Code, userID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Joined team successfully", t)
}

// GetTeam godoc
// @Summary Get a team by its ID
// @Tags Teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	t, err := tc.registry.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", t)
}

// UpdateTeam godoc
// @Summary Update a team
// @Description Renames the team. Leader only; the leader itself cannot change.
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param team body UpdateTeamRequest true "Updated fields"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse "Not the leader"
// @Security ApiKeyAuth
// @Router /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := tc.registry.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	t.Name = req.Name
	if err := tc.registry.Update(c.Request.Context(), userID, t); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", t)
}

// RemoveMember godoc
// @Summary Remove a member from a team
// @Description Leader-only. Strips the member from the team and their membership record.
// @Tags Teams
// @Produce json
// @Param id path string true "Team ID"
// @Param userId path string true "Member user ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse "Not the leader"
// @Security ApiKeyAuth
// @Router /teams/{id}/members/{userId} [delete]
func (tc *TeamController) RemoveMember(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	err := tc.lifecycle.RemoveMember(c.Request.Context(), userID, c.Param("id"), c.Param("userId"))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed", nil)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Description Leader-only. Cascades over devotionals, messages and memberships.
// @Tags Teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse "Not the leader"
// @Security ApiKeyAuth
// @Router /teams/{id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	if err := tc.lifecycle.DeleteTeam(c.Request.Context(), c.Param("id"), userID); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted", nil)
}
