package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homeboard/internal/contacts"
	"homeboard/internal/models"
	"homeboard/internal/store"
)

func (h *Handler) listContacts(c *gin.Context) {
	items, err := h.Contacts.List(c.Request.Context(), store.Query{Owner: identity(c).ID, Sort: "name"})
	if err != nil {
		fail(c, err)
		return
	}

	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		items = store.Search(items, func(ct models.Contact) bool {
			haystack := strings.ToLower(strings.Join([]string{
				ct.Name, ct.Phone, ct.Email, ct.Address, ct.Notes, ct.Organization,
			}, " "))
			return strings.Contains(haystack, q)
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// importContacts takes the uploaded CSV export and inserts one record per
// valid row. Rows already written stay written when a later row fails.
func (h *Handler) importContacts(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, &store.ValidationError{Field: "file", Reason: "a CSV file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		fail(c, &store.ValidationError{Field: "file", Reason: "could not open uploaded file"})
		return
	}
	defer src.Close()

	owner := identity(c).ID
	sum, err := contacts.Import(c.Request.Context(), src, func(ctx context.Context, ct *models.Contact) error {
		_, err := h.Contacts.Insert(ctx, owner, ct)
		return err
	})
	if err != nil {
		fail(c, &store.ValidationError{Field: "file", Reason: err.Error()})
		return
	}

	if sum.Imported == 0 {
		notify(c, http.StatusBadRequest, "failure",
			"Failed to add contacts. Please check your CSV format.", gin.H{"summary": sum})
		return
	}
	notify(c, http.StatusOK, "success",
		fmt.Sprintf("Successfully added %d contacts. Failed: %d", sum.Imported, sum.Failed),
		gin.H{"summary": sum})
}

func (h *Handler) removeContact(c *gin.Context) {
	if err := h.Contacts.Remove(c.Request.Context(), identity(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	notify(c, http.StatusOK, "warning", "Contact removed", nil)
}
