// Package auth verifies the Google sign-in the dashboard client performs
// and exposes the resulting identity to every widget handler.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

// Identity is what the identity provider exposes to the widgets.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Verifier turns a bearer token into an identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// GoogleVerifier validates Google ID tokens against the configured OAuth
// client id.
type GoogleVerifier struct {
	Audience string
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.Audience)
	if err != nil {
		return Identity{}, fmt.Errorf("validate id token: %w", err)
	}

	id := Identity{ID: payload.Subject}
	if s, ok := payload.Claims["email"].(string); ok {
		id.Email = s
	}
	if s, ok := payload.Claims["name"].(string); ok {
		id.Name = s
	}
	if s, ok := payload.Claims["picture"].(string); ok {
		id.Picture = s
	}
	return id, nil
}

// StaticVerifier is the development-mode identity: every request is the
// configured user. Never enable outside local runs.
type StaticVerifier struct {
	User Identity
}

func (v *StaticVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	return v.User, nil
}

const contextKey = "homeboard.identity"

// BearerToken extracts the token the middleware verifies.
func BearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// Attach stores the verified identity for the rest of the request. Owned
// collections are only ever queried through this identity; there is no
// client-supplied owner filter to trust.
func Attach(c *gin.Context, id Identity) {
	c.Set(contextKey, id)
}

// FromContext returns the identity Attach stored, if any.
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
