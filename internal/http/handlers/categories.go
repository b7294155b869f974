package handlers

import (
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ManageCategories(c *gin.Context) {
	categories, err := h.Categories.ListByName(c.Request.Context())
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	h.render(c, "categories.html", gin.H{"categories": categories})
}

func (h *Handler) AddCategory(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		category := &domain.Category{CategoryName: c.PostForm("category_name")}
		if err := h.Categories.Create(c.Request.Context(), category); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		service.SetFlash(c, "Category is added succesfully")
		c.Redirect(http.StatusFound, "/manage_categories")
		return
	}

	h.render(c, "add_categories.html", nil)
}

func (h *Handler) EditCategory(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if c.Request.Method == http.MethodPost {
		category := &domain.Category{CategoryName: c.PostForm("category_name")}
		if err := h.Categories.Replace(ctx, id, category); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		service.SetFlash(c, "Category updated")
		c.Redirect(http.StatusFound, "/manage_categories")
		return
	}

	category, _ := h.Categories.GetByID(ctx, id)
	h.render(c, "edit_category.html", gin.H{"category": category})
}

// DeleteCategory removes the category only; tasks that copied its name
// keep the dangling name.
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	service.SetFlash(c, "category succesfully deleted")
	c.Redirect(http.StatusFound, "/manage_categories")
}
