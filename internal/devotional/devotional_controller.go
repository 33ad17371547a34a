// devotional/devotional_controller.go
package devotional

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devoapp/backend/internal/middleware"
	"github.com/devoapp/backend/pkg/responses"
)

// DevotionalController handles devotional and message HTTP requests.
type DevotionalController struct {
	registry Registry
	messages MessageEngine
}

// NewDevotionalController creates a new devotional controller.
func NewDevotionalController(registry Registry, messages MessageEngine) *DevotionalController {
	return &DevotionalController{registry: registry, messages: messages}
}

type InstructionRequest struct {
	Day         int       `json:"day" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Instruction string    `json:"instruction" binding:"required"`
	Passage     string    `json:"passage"`
}

type CreateDevotionalRequest struct {
	TeamID       string               `json:"team_id" binding:"required"`
	Title        string               `json:"title" binding:"required"`
	StartDate    time.Time            `json:"start_date" binding:"required"`
	EndDate      time.Time            `json:"end_date" binding:"required"`
	Instructions []InstructionRequest `json:"instructions" binding:"required"`
}

type SendMessageRequest struct {
	Day     int    `json:"day" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// DayView is the per-day payload the clients render a week from.
type DayView struct {
	Day         int               `json:"day"`
	Instruction *DailyInstruction `json:"instruction,omitempty"`
	Status      DayStatus         `json:"status"`
}

// CreateDevotional godoc
// @Summary Create a devotional for a team
// @Description Creates a seven day devotional. Exactly seven instructions are required.
// @Tags Devotionals
// @Accept json
// @Produce json
// @Param devotional body CreateDevotionalRequest true "Devotional data"
// @Success 201 {object} responses.SuccessResponse{data=Devotional}
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Security ApiKeyAuth
// @Router /devotionals [post]
func (dc *DevotionalController) CreateDevotional(c *gin.Context) {
	var req CreateDevotionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	instructions := make([]DailyInstruction, 0, len(req.Instructions))
	for _, in := range req.Instructions {
		instructions = append(instructions, DailyInstruction{
			Day:         in.Day,
			Date:        in.Date,
			Instruction: in.Instruction,
			Passage:     in.Passage,
		})
	}

	d, err := dc.registry.Create(c.Request.Context(), req.TeamID, req.Title, req.StartDate, req.EndDate, instructions)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Devotional created successfully", d)
}

// GetActive godoc
// @Summary Get the active devotional for a team
// @Description Returns the most recently created devotional for the team, with the resolved current day.
// @Tags Devotionals
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "No devotional for team"
// @Security ApiKeyAuth
// @Router /teams/{id}/devotional [get]
func (dc *DevotionalController) GetActive(c *gin.Context) {
	d, err := dc.registry.GetActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if d == nil {
		responses.NotFound(c, "Devotional")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"devotional":  d,
		"current_day": CurrentDay(d, time.Now()),
		"is_active":   d.IsActive(time.Now()),
	})
}

// GetDevotional godoc
// @Summary Get a devotional by ID
// @Tags Devotionals
// @Produce json
// @Param id path string true "Devotional ID"
// @Success 200 {object} responses.SuccessResponse{data=Devotional}
// @Failure 404 {object} responses.ErrorResponse "Devotional not found"
// @Security ApiKeyAuth
// @Router /devotionals/{id} [get]
func (dc *DevotionalController) GetDevotional(c *gin.Context) {
	d, err := dc.registry.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if d == nil {
		responses.NotFound(c, "Devotional")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", d)
}

// GetWeek godoc
// @Summary Get the week view for a devotional
// @Description Returns the seven days with their instructions and the caller's per-day status.
// @Tags Devotionals
// @Produce json
// @Param id path string true "Devotional ID"
// @Success 200 {object} responses.SuccessResponse{data=[]DayView}
// @Failure 404 {object} responses.ErrorResponse "Devotional not found"
// @Security ApiKeyAuth
// @Router /devotionals/{id}/week [get]
func (dc *DevotionalController) GetWeek(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	d, err := dc.registry.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if d == nil {
		responses.NotFound(c, "Devotional")
		return
	}

	now := time.Now()
	week := make([]DayView, 0, Days)
	for day := 1; day <= Days; day++ {
		msgs, err := dc.messages.GetForDay(c.Request.Context(), d.ID, day)
		if err != nil {
			responses.SendDomainError(c, err)
			return
		}
		week = append(week, DayView{
			Day:         day,
			Instruction: d.InstructionForDay(day),
			Status:      StatusForDay(day, d, msgs, userID, now),
		})
	}
	responses.SendSuccess(c, http.StatusOK, "", week)
}

// SendMessage godoc
// @Summary Send or edit the caller's message for a day
// @Description Upserts the single message a user gets per devotional day. A second send edits in place.
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path string true "Devotional ID"
// @Param message body SendMessageRequest true "Message content"
// @Success 200 {object} responses.SuccessResponse{data=Message}
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Security ApiKeyAuth
// @Router /devotionals/{id}/messages [post]
func (dc *DevotionalController) SendMessage(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	m, err := dc.messages.Send(c.Request.Context(), c.Param("id"), req.Day, userID, middleware.CurrentUserName(c), req.Content)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Message saved", m)
}

// GetMessages godoc
// @Summary List the messages for a devotional day
// @Tags Messages
// @Produce json
// @Param id path string true "Devotional ID"
// @Param day query int true "Day number (1-7)"
// @Success 200 {object} responses.SuccessResponse{data=[]Message}
// @Failure 400 {object} responses.ErrorResponse "Invalid day"
// @Security ApiKeyAuth
// @Router /devotionals/{id}/messages [get]
func (dc *DevotionalController) GetMessages(c *gin.Context) {
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil {
		responses.BadRequest(c, "day must be a number")
		return
	}

	msgs, err := dc.messages.GetForDay(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", msgs)
}

// DeleteMessage godoc
// @Summary Delete a message
// @Tags Messages
// @Produce json
// @Param messageId path string true "Message ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /messages/{messageId} [delete]
func (dc *DevotionalController) DeleteMessage(c *gin.Context) {
	if err := dc.messages.Delete(c.Request.Context(), c.Param("messageId")); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Message deleted", nil)
}

// GetMissedDays godoc
// @Summary Count the caller's missed days for a devotional
// @Tags Devotionals
// @Produce json
// @Param id path string true "Devotional ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Devotional not found"
// @Security ApiKeyAuth
// @Router /devotionals/{id}/missed [get]
func (dc *DevotionalController) GetMissedDays(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	d, err := dc.registry.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if d == nil {
		responses.NotFound(c, "Devotional")
		return
	}

	var all []Message
	for day := 1; day <= Days; day++ {
		msgs, err := dc.messages.GetForDay(c.Request.Context(), d.ID, day)
		if err != nil {
			responses.SendDomainError(c, err)
			return
		}
		all = append(all, msgs...)
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"missed_days": MissedDaysCount(d, all, userID, time.Now()),
	})
}
