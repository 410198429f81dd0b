package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// HeaderSessionID carries the shopper's cart session between requests.
const HeaderSessionID = "X-Session-ID"

// sessionID returns the caller's session id, issuing a fresh one when the header is
// missing or not a UUID. The id is echoed back on the response.
// The header value is copied: it outlives the request as a session store key, and
// fasthttp reuses the request buffer once the handler returns.
func sessionID(c *fiber.Ctx) string {
	id := utils.CopyString(c.Get(HeaderSessionID))
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Set(HeaderSessionID, id)
	return id
}
