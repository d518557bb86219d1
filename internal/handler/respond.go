package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zokirzonovbek1-art/school-food-system/internal/fieldmap"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/apperror"
)

// Every response carries the ok flag the front-end switches on:
// {"ok":true,...} on success, {"ok":false,"error":...} on failure.

func respondOK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondErr(c *gin.Context, err error) {
	status := apperror.MapErrorToStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Внутренняя ошибка сервера"
	}
	c.JSON(status, gin.H{"ok": false, "error": message})
}

func respondBad(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": message})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBad(c, "Некорректный id")
		return 0, false
	}
	return uint(id), true
}

func bindPayload(c *gin.Context) (fieldmap.Payload, bool) {
	var payload fieldmap.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBad(c, "Некорректный JSON")
		return nil, false
	}
	return payload, true
}

// toAPIList maps a model slice through its ToAPI method.
func toAPIList[T interface{ ToAPI() map[string]any }](items []T) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.ToAPI())
	}
	return out
}
