package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"todoapp/internal/httpx"
	"todoapp/internal/models"
	"todoapp/internal/services"
)

type TodoHandler struct {
	service services.TodoService
}

func NewTodoHandler(service services.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// GET /todos
func (h *TodoHandler) List(c *gin.Context) {
	uid := currentUserID(c)

	todos, err := h.service.List(c.Request.Context(), uid)
	if err != nil {
		log.Printf("[todo][list][err] user=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve todos"})
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	log.Printf("[todo][list][ok] user=%d count=%d", uid, len(todos))
	c.JSON(http.StatusOK, todos)
}

// POST /todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req struct {
		Title      string `json:"title" binding:"required,max=250"`
		Completed  *bool  `json:"completed"`
		ReminderAt string `json:"reminder_at"` // RFC3339
	}

	uid := currentUserID(c)

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[todo][create][bind][err] user=%d: %v", uid, err)
		c.JSON(http.StatusUnprocessableEntity, httpx.BindingReport(err))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusUnprocessableEntity, httpx.Report("title", "The title field is required."))
		return
	}

	var rem *time.Time
	if req.ReminderAt != "" {
		t, err := time.Parse(time.RFC3339, req.ReminderAt)
		if err != nil {
			log.Printf("[todo][create][err] user=%d invalid reminder_at=%q: %v", uid, req.ReminderAt, err)
			c.JSON(http.StatusUnprocessableEntity, httpx.Report("reminder_at", "The reminder_at must be a valid RFC3339 date/time."))
			return
		}
		rem = &t
	}

	completed := false
	if req.Completed != nil {
		completed = *req.Completed
	}

	todo, err := h.service.Create(c.Request.Context(), uid, req.Title, completed, rem)
	if err != nil {
		log.Printf("[todo][create][err] user=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}
	log.Printf("[todo][create][ok] user=%d id=%d title=%q", uid, todo.ID, todo.Title)
	c.JSON(http.StatusCreated, todo)
}

// GET /todos/:id
func (h *TodoHandler) GetByID(c *gin.Context) {
	uid := currentUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	todo, err := h.service.Get(c.Request.Context(), uid, id)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			log.Printf("[todo][get][404] user=%d id=%d", uid, id)
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		log.Printf("[todo][get][err] user=%d id=%d: %v", uid, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get todo"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

// POST /todos/:id  (partial update)
func (h *TodoHandler) Update(c *gin.Context) {
	uid := currentUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Title      *string `json:"title"`
		Completed  *bool   `json:"completed"`
		ReminderAt *string `json:"reminder_at"` // RFC3339; empty string clears
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[todo][update][bind][err] user=%d id=%d: %v", uid, id, err)
		c.JSON(http.StatusUnprocessableEntity, httpx.BindingReport(err))
		return
	}

	upd := &services.TodoUpdate{Completed: req.Completed}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			c.JSON(http.StatusUnprocessableEntity, httpx.Report("title", "The title field is required."))
			return
		}
		if len(title) > models.TitleMaxLen {
			c.JSON(http.StatusUnprocessableEntity, httpx.Report("title", "The title may not be greater than 250 characters."))
			return
		}
		upd.Title = &title
	}
	if req.ReminderAt != nil {
		upd.SetReminder = true
		if *req.ReminderAt != "" {
			t, err := time.Parse(time.RFC3339, *req.ReminderAt)
			if err != nil {
				log.Printf("[todo][update][err] user=%d id=%d invalid reminder_at=%q: %v", uid, id, *req.ReminderAt, err)
				c.JSON(http.StatusUnprocessableEntity, httpx.Report("reminder_at", "The reminder_at must be a valid RFC3339 date/time."))
				return
			}
			upd.ReminderAt = &t
		}
	}

	todo, err := h.service.Update(c.Request.Context(), uid, id, upd)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			log.Printf("[todo][update][404] user=%d id=%d", uid, id)
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		log.Printf("[todo][update][err] user=%d id=%d: %v", uid, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update todo"})
		return
	}
	log.Printf("[todo][update][ok] user=%d id=%d", uid, id)
	c.JSON(http.StatusOK, todo)
}

// DELETE /todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	uid := currentUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uid, id); err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			log.Printf("[todo][delete][404] user=%d id=%d", uid, id)
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		log.Printf("[todo][delete][err] user=%d id=%d: %v", uid, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete todo"})
		return
	}
	log.Printf("[todo][delete][ok] user=%d id=%d", uid, id)
	c.Status(http.StatusNoContent)
}
