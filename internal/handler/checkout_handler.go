package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
)

// CheckoutServiceInterface defines the interface for order submission and listing.
type CheckoutServiceInterface interface {
	SubmitOrder(ctx context.Context, sessionID string, customer model.Customer) (*model.Order, error)
	ListOrders(ctx context.Context, limit int) ([]model.Order, error)
}

// CheckoutHandler handles HTTP requests for checkout and order administration.
type CheckoutHandler struct {
	service   CheckoutServiceInterface
	validator *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler with the given service and validator.
func NewCheckoutHandler(svc CheckoutServiceInterface, v *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{service: svc, validator: v}
}

// SubmitOrder handles POST /api/checkout.
func (h *CheckoutHandler) SubmitOrder(c *fiber.Ctx) error {
	sid := sessionID(c)

	var req model.SubmitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	order, err := h.service.SubmitOrder(c.Context(), sid, req.Customer)
	if err != nil {
		return writeError(c, err, "failed to submit order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// ListOrders handles GET /api/admin/orders?limit=N.
func (h *CheckoutHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err, "failed to list orders")
	}
	return c.JSON(orders)
}
