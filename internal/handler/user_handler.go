package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zokirzonovbek1-art/school-food-system/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"users": toAPIList(users)})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user.ToAPI()})
}

func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.userService.Search(c.Request.Context(), c.Query("q"), c.Query("role"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"users": toAPIList(users)})
}

// Export streams the user list as a CSV attachment.
func (h *UserHandler) Export(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondErr(c, err)
		return
	}

	var b strings.Builder
	b.WriteString("id,name,email,login,role,class,balance,active\n")
	for _, u := range users {
		class := ""
		if u.Class != nil {
			class = *u.Class
		}
		fmt.Fprintf(&b, "%d,%s,%s,%s,%s,%s,%.2f,%t\n",
			u.ID, csvEscape(u.FullName), u.Email, u.Login, u.Role, csvEscape(class), u.Balance, u.IsActive)
	}

	c.Header("Content-Disposition", `attachment; filename="users.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(b.String()))
}

func (h *UserHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	user, err := h.userService.Create(c.Request.Context(), payload)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"user": user.ToAPI()})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), id, payload)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user.ToAPI()})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	newPassword := payload.String("password", "newPassword")
	if newPassword == "" {
		respondBad(c, "password обязателен")
		return
	}
	user, err := h.userService.ResetPassword(c.Request.Context(), id, newPassword)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user.ToAPI()})
}

func (h *UserHandler) ToggleActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	active, present, err := payload.Bool("active", "isActive")
	if err != nil {
		respondBad(c, "Некорректное значение active")
		return
	}
	if !present {
		// No explicit value means flip the current flag.
		current, err := h.userService.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		active = !current.IsActive
	}
	user, err := h.userService.ToggleActive(c.Request.Context(), id, active)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user.ToAPI()})
}

func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
