package api

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"homeboard/internal/models"
	"homeboard/internal/store"
)

var schemePrefix = regexp.MustCompile(`(?i)^https?://`)

// normalizeBookmarkURL validates the raw input and prefixes https:// when
// no scheme was given.
func normalizeBookmarkURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &store.ValidationError{Field: "url", Reason: "URL is required"}
	}
	if !schemePrefix.MatchString(raw) {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return nil, &store.ValidationError{Field: "url", Reason: "please enter a valid URL"}
	}
	return u, nil
}

// bookmarkTitle falls back to the host, with a leading www. stripped, when
// no title was given.
func bookmarkTitle(title string, u *url.URL) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func faviconURL(host string) string {
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=128", host)
}

func (h *Handler) listBookmarks(c *gin.Context) {
	items, err := h.Bookmarks.List(c.Request.Context(), store.Query{Owner: identity(c).ID, Desc: true})
	if err != nil {
		fail(c, err)
		return
	}

	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		items = store.Search(items, func(b models.Bookmark) bool {
			haystack := strings.ToLower(strings.Join([]string{
				b.Title, b.URL, b.Category, b.Description,
			}, " "))
			return strings.Contains(haystack, q)
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) addBookmark(c *gin.Context) {
	var req struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, &store.ValidationError{Reason: "invalid JSON payload"})
		return
	}

	u, err := normalizeBookmarkURL(req.URL)
	if err != nil {
		fail(c, err)
		return
	}

	bookmark := &models.Bookmark{
		Title:       bookmarkTitle(req.Title, u),
		URL:         u.String(),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Favicon:     faviconURL(u.Hostname()),
	}
	id, err := h.Bookmarks.Insert(c.Request.Context(), identity(c).ID, bookmark)
	if err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusCreated, "success", "Bookmark added", gin.H{"id": id})
}

func (h *Handler) removeBookmark(c *gin.Context) {
	if err := h.Bookmarks.Remove(c.Request.Context(), identity(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "warning", "Bookmark removed", nil)
}
