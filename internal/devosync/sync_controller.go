// devosync/sync_controller.go
package devosync

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devoapp/backend/internal/middleware"
	"github.com/devoapp/backend/internal/store"
	"github.com/devoapp/backend/internal/user"
	"github.com/devoapp/backend/pkg/responses"
)

// SyncController exposes the supervisor's event stream over server-sent
// events. Each connection gets its own supervisor, bound for the lifetime of
// the request.
type SyncController struct {
	st          store.Store
	memberships user.MembershipStore
	log         *logrus.Entry
}

// NewSyncController creates a new sync controller.
func NewSyncController(st store.Store, memberships user.MembershipStore) *SyncController {
	return &SyncController{
		st:          st,
		memberships: memberships,
		log:         logrus.WithField("component", "sync_controller"),
	}
}

// Stream godoc
// @Summary Live sync stream
// @Description Streams membership, team and message snapshots for the caller's selected team as server-sent events. Optional devotionalId and day query params additionally bind one message day.
// @Tags Sync
// @Produce text/event-stream
// @Param devotionalId query string false "Devotional to bind messages for"
// @Param day query int false "Day number (1-7)"
// @Success 200 {string} string "event stream"
// @Failure 404 {object} responses.ErrorResponse "No selected team"
// @Security ApiKeyAuth
// @Router /sync [get]
func (sc *SyncController) Stream(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Unauthorized(c, "")
		return
	}

	teamID, err := sc.memberships.GetSelected(c.Request.Context(), userID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if teamID == "" {
		responses.NotFound(c, "Selected team")
		return
	}

	sup := New(sc.st)
	defer sup.Close()

	sup.SelectTeam(userID, teamID)
	if devotionalID := c.Query("devotionalId"); devotionalID != "" {
		day, convErr := strconv.Atoi(c.DefaultQuery("day", "1"))
		if convErr != nil {
			day = 1
		}
		sup.SelectDay(devotionalID, day)
	}

	sc.log.WithFields(logrus.Fields{"user_id": userID, "team_id": teamID}).Debug("sync stream opened")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, open := <-sup.Events():
			if !open {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		}
	})

	sc.log.WithField("user_id", userID).Debug("sync stream closed")
}

// RegisterSyncRoutes wires the sync stream onto the given router group.
func RegisterSyncRoutes(rg *gin.RouterGroup, sc *SyncController) {
	rg.GET("/sync", sc.Stream)
}
