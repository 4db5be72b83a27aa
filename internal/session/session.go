package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Context carries the identity attached to every gateway call. It is built
// once from the bearer token's claims and injected into each component at
// construction; nothing reads auth state ad hoc from disk after startup.
//
// The role only gates which affordances the client shows. The server
// re-enforces authorization on every request.
type Context struct {
	Token        string
	EmployeeID   string
	EmployeeName string
	IsAdmin      bool
	ExpiresAt    time.Time
}

type claims struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// FromToken decodes the bearer token's claims without verifying the
// signature. The client has no signing key and does not need one: the server
// validates the token on every call, the client only reads identity and role
// out of it.
func FromToken(token string) (Context, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Context{}, fmt.Errorf("empty token")
	}
	var c claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return Context{}, fmt.Errorf("parse token claims: %w", err)
	}
	id := c.EmployeeID
	if id == "" {
		id = c.Subject
	}
	if id == "" {
		return Context{}, fmt.Errorf("token carries no employee id")
	}
	ctx := Context{
		Token:        token,
		EmployeeID:   id,
		EmployeeName: c.Name,
		IsAdmin:      strings.EqualFold(c.Role, "admin"),
	}
	if c.ExpiresAt != nil {
		ctx.ExpiresAt = c.ExpiresAt.Time
	}
	return ctx, nil
}

// Expired reports whether the session's token has an expiry in the past.
// Tokens without an exp claim never report expired here; the server decides.
func (c Context) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
