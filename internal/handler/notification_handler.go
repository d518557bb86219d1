package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/zokirzonovbek1-art/school-food-system/internal/service"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/validator"
)

type NotificationHandler struct {
	service     service.NotificationService
	redisClient *redis.Client
	upgrader    websocket.Upgrader
}

func NewNotificationHandler(service service.NotificationService, redisClient *redis.Client) *NotificationHandler {
	return &NotificationHandler{
		service:     service,
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
	if err != nil {
		respondBad(c, "Некорректный userId")
		return
	}
	flag := strings.ToLower(c.Query("unreadOnly"))
	unreadOnly := flag == "1" || flag == "true" || flag == "yes"

	notifications, err := h.service.List(c.Request.Context(), uint(userID), unreadOnly)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"notifications": toAPIList(notifications)})
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var input service.CreateNotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBad(c, validator.FormatValidationError(err))
		return
	}

	notification, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"notification": notification.ToAPI()})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	notification, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"notification": notification.ToAPI()})
}

// Stream upgrades to a websocket and forwards the user's redis notification
// channel until either side goes away. Without redis the endpoint is a 503:
// polling the REST list is the fallback.
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
	if err != nil {
		respondBad(c, "Некорректный userId")
		return
	}

	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "Поток уведомлений недоступен"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	channel := fmt.Sprintf("user_notifications:%d", userID)
	pubsub := h.redisClient.Subscribe(c.Request.Context(), channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("redis subscribe failed: %v", err)
		return
	}
	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
