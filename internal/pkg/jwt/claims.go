package jwt

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Claims is the actor identity every service call runs under. The auth
// collaborator fills these into the access token; services only read
// them.
type Claims struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	IsAdmin    bool
}

// ClaimsFromContext extracts the actor claims from the verified token
// in ctx.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var c Claims

	c.CompanyID, _ = raw["company_id"].(string)
	if c.CompanyID == "" {
		return Claims{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	c.EmployeeID, _ = raw["employee_id"].(string)
	c.UserID, _ = raw["user_id"].(string)
	c.IsAdmin, _ = raw["is_admin"].(bool)

	return c, nil
}
