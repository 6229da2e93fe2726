package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitchbook/models"
	"pitchbook/services/notification"
	"pitchbook/utils"
)

type NotificationHandler struct {
	Notifications notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: svc}
}

// ListNotificationsHandler handles GET /notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	limit, offset := parsePagination(c)
	items, err := h.Notifications.ListForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list notifications", err.Error())
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// MarkNotificationReadHandler handles POST /notifications/:notificationID/read.
func (h *NotificationHandler) MarkNotificationReadHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Notifications.MarkRead(c.Request.Context(), userID, c.Param("notificationID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notification read", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked read"})
}

// MarkAllNotificationsReadHandler handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllNotificationsReadHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notifications read", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All marked read"})
}

// UnreadCountHandler handles GET /notifications/unread-count.
func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	userID := c.GetString("userID")
	count, err := h.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to count notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
