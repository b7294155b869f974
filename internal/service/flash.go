package service

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "flash"
	flashKey    = "flash_message"
)

// SetFlash queues a one-shot status message for the next rendered page.
// The message rides a cookie so it survives a redirect, and is kept in
// the gin context so a render later in the same request sees it too.
// The cookie value is URL-escaped because cookie values cannot carry
// spaces.
func SetFlash(c *gin.Context, msg string) {
	c.Set(flashKey, msg)
	c.SetCookie(flashCookie, url.QueryEscape(msg), 60, "/", "", false, true)
}

// PopFlash reads and clears the queued message in one step, so a message
// is shown exactly once. A message queued earlier in this same request
// (the fall-through render paths) takes priority over one carried in
// from the previous response.
func PopFlash(c *gin.Context) string {
	if v, ok := c.Get(flashKey); ok {
		if msg, _ := v.(string); msg != "" {
			c.Set(flashKey, "")
			c.SetCookie(flashCookie, "", -1, "/", "", false, true)
			return msg
		}
	}

	v, err := c.Cookie(flashCookie)
	if err != nil || v == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	msg, err := url.QueryUnescape(v)
	if err != nil {
		return ""
	}
	return msg
}
