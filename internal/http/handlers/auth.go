package handlers

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Register creates an account and logs the new user straight in. A taken
// username bounces back to the form with a flash; usernames are
// lowercased before any lookup or insert.
func (h *Handler) Register(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		username := strings.ToLower(c.PostForm("username"))
		ctx := c.Request.Context()

		if _, err := h.Users.GetByUsername(ctx, username); err == nil {
			service.SetFlash(c, "Username already exists")
			c.Redirect(http.StatusFound, "/register")
			return
		}

		hash, err := service.HashPassword(c.PostForm("password"))
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		user := &domain.User{Username: username, PasswordHash: hash}
		if err := h.Users.Create(ctx, user); err != nil {
			// lost the race on the unique index: same outcome as the
			// lookup above
			if errors.Is(err, repository.ErrUsernameTaken) {
				service.SetFlash(c, "Username already exists")
				c.Redirect(http.StatusFound, "/register")
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if err := h.Sessions.Start(c, username); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		logger.Info("user registered", "username", username)
		service.SetFlash(c, "Registration succesfull")
		c.Redirect(http.StatusFound, "/profile/"+username)
		return
	}

	h.render(c, "register.html", nil)
}

// Login verifies credentials. An unknown username and a wrong password
// flash the identical message, and both paths run a full bcrypt
// comparison so neither content nor timing tells them apart.
func (h *Handler) Login(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		username := strings.ToLower(c.PostForm("username"))
		ctx := c.Request.Context()

		hash := ""
		if user, err := h.Users.GetByUsername(ctx, username); err == nil {
			hash = user.PasswordHash
		}

		if service.VerifyPassword(hash, c.PostForm("password")) {
			if err := h.Sessions.Start(c, username); err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			// greeting uses the name as typed, not the normalized form
			service.SetFlash(c, "Welcome, "+c.PostForm("username"))
			c.Redirect(http.StatusFound, "/profile/"+username)
			return
		}

		service.SetFlash(c, "Username and/or password are incorrect")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.render(c, "login.html", nil)
}

// Profile renders the logged-in user's page. The :username path value is
// accepted but ignored: the rendered identity is always the session's
// user. Anything short of a clean lookup redirects to login.
func (h *Handler) Profile(c *gin.Context) {
	sessionUser, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.Users.GetByUsername(c.Request.Context(), sessionUser)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.render(c, "profile.html", gin.H{"username": user.Username})
}

func (h *Handler) Logout(c *gin.Context) {
	service.SetFlash(c, "You have been logged out")
	h.Sessions.End(c)
	c.Redirect(http.StatusFound, "/login")
}
