package handlers

import (
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
)

// ListTasks renders every task in storage order. No auth required.
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	h.render(c, "tasks.html", gin.H{"tasks": tasks})
}

func (h *Handler) taskFromForm(c *gin.Context, createdBy string) *domain.Task {
	return &domain.Task{
		CategoryName:    c.PostForm("category_name"),
		TaskName:        c.PostForm("task_name"),
		TaskDescription: c.PostForm("task_description"),
		IsUrgent:        domain.UrgencyFromForm(c.PostForm("is_urgent")),
		DueDate:         c.PostForm("due_date"),
		CreatedBy:       createdBy,
	}
}

// AddTask inserts a task for the session user. Without a session the
// write is silently skipped and "Insert failed" is flashed; unlike
// profile, the request is not redirected away, it falls through to the
// form render.
func (h *Handler) AddTask(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		if user, ok := currentUser(c); ok {
			task := h.taskFromForm(c, user)
			if err := h.Tasks.Create(c.Request.Context(), task); err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			h.Feed.Broadcast(ws.Event{Type: ws.EventTaskCreated, Task: task})
			service.SetFlash(c, "Insert succesfull")
			c.Redirect(http.StatusFound, "/get_tasks")
			return
		}
		service.SetFlash(c, "Insert failed")
	}

	categories, err := h.Categories.ListByName(c.Request.Context())
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	h.render(c, "add_task.html", gin.H{"categories": categories})
}

// EditTask fully replaces the task at :id from the submitted form. The
// same session asymmetry as AddTask applies, and even a successful update
// re-renders the edit page rather than redirecting.
func (h *Handler) EditTask(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if c.Request.Method == http.MethodPost {
		if user, ok := currentUser(c); ok {
			task := h.taskFromForm(c, user)
			if err := h.Tasks.Replace(ctx, id, task); err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			h.Feed.Broadcast(ws.Event{Type: ws.EventTaskUpdated, Task: task, ID: id})
			service.SetFlash(c, "Update succesfull")
		} else {
			service.SetFlash(c, "Insert failed")
		}
	}

	task, _ := h.Tasks.GetByID(ctx, id)
	categories, err := h.Categories.ListByName(ctx)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	h.render(c, "edit_task.html", gin.H{"task": task, "categories": categories})
}

// DeleteTask removes the task unconditionally. No ownership check, and a
// nonexistent id deletes nothing but still reports success.
func (h *Handler) DeleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := h.Tasks.Delete(c.Request.Context(), id); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	h.Feed.Broadcast(ws.Event{Type: ws.EventTaskDeleted, ID: id})
	service.SetFlash(c, "Task succesfully deleted")
	c.Redirect(http.StatusFound, "/get_tasks")
}

// Search renders tasks whose text matches the submitted query. No
// matches is an empty page, never an error.
func (h *Handler) Search(c *gin.Context) {
	query := c.PostForm("query")
	tasks, err := h.Tasks.Search(c.Request.Context(), query)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	h.render(c, "tasks.html", gin.H{"tasks": tasks})
}
