package auth

import "github.com/gofiber/fiber/v2"

const (
	localStoreID = "store_id"
	localUserID  = "user_id"
	localRole    = "role"
)

type UserContext struct {
	StoreID string
	UserID  string
	Role    string
}

// SetUser stores the authenticated identity on the request. Called by the
// JWT middleware only.
func SetUser(c *fiber.Ctx, u UserContext) {
	c.Locals(localStoreID, u.StoreID)
	c.Locals(localUserID, u.UserID)
	c.Locals(localRole, u.Role)
}

// GetStoreID returns the tenant the request is scoped to, or "" on
// unauthenticated routes.
func GetStoreID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localStoreID).(string); ok {
		return v
	}
	return ""
}

func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localUserID).(string); ok {
		return v
	}
	return ""
}
