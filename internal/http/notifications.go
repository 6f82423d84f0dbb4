package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/notify"
)

const defaultNotificationLimit = 20

type NotificationsController struct {
	feed NotificationReader
}

func NewNotificationsController(feed NotificationReader) *NotificationsController {
	return &NotificationsController{feed: feed}
}

// List returns recent notifications, newest first. With ?since=<id> it
// returns only the ones raised after that id, so clients can poll.
// GET /api/notifications
func (nc *NotificationsController) List(c *gin.Context) {
	var items []notify.Notification

	if since := c.Query("since"); since != "" {
		id, err := strconv.ParseUint(since, 10, 64)
		if err != nil {
			respondBadRequest(c, "since must be a notification id", "invalid_parameter")
			return
		}
		items = nc.feed.Since(id)
	} else {
		limit, _ := parsePagination(c, defaultNotificationLimit)
		items = nc.feed.Recent(limit)
	}

	if items == nil {
		items = []notify.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}
