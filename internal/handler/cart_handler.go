package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
)

// CartServiceInterface defines the interface for cart operations.
type CartServiceInterface interface {
	Regions() []model.Region
	Get(ctx context.Context, sessionID string) (*model.CartView, error)
	AddItem(ctx context.Context, sessionID string, req *model.AddItemRequest) (*model.CartView, error)
	RemoveItem(ctx context.Context, sessionID string, key model.LineKey) (*model.CartView, error)
	UpdateQuantity(ctx context.Context, sessionID string, key model.LineKey, quantity int) (*model.CartView, error)
	SetRegion(ctx context.Context, sessionID, name string) (*model.CartView, error)
	ApplyPromoCode(ctx context.Context, sessionID, code string) (*model.CartView, *model.ValidationResult, error)
	RemovePromoCode(ctx context.Context, sessionID string) (*model.CartView, error)
	Clear(ctx context.Context, sessionID string) (*model.CartView, error)
}

// CartHandler handles HTTP requests for the shopper's cart.
type CartHandler struct {
	service   CartServiceInterface
	validator *validator.Validate
}

// NewCartHandler creates a new CartHandler with the given service and validator.
func NewCartHandler(svc CartServiceInterface, v *validator.Validate) *CartHandler {
	return &CartHandler{service: svc, validator: v}
}

// Regions handles GET /api/regions.
func (h *CartHandler) Regions(c *fiber.Ctx) error {
	return c.JSON(h.service.Regions())
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	view, err := h.service.Get(c.Context(), sessionID(c))
	if err != nil {
		return writeError(c, err, "failed to load cart")
	}
	return c.JSON(view)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	sid := sessionID(c)

	var req model.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	view, err := h.service.AddItem(c.Context(), sid, &req)
	if err != nil {
		return writeError(c, err, "failed to add item to cart")
	}
	return c.JSON(view)
}

// UpdateQuantity handles PATCH /api/cart/items. A quantity of zero or less removes the line.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sid := sessionID(c)

	req, ok := h.parseLineItem(c)
	if !ok {
		return nil
	}

	view, err := h.service.UpdateQuantity(c.Context(), sid, req.Key(), req.Quantity)
	if err != nil {
		return writeError(c, err, "failed to update cart item")
	}
	return c.JSON(view)
}

// RemoveItem handles DELETE /api/cart/items.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	sid := sessionID(c)

	req, ok := h.parseLineItem(c)
	if !ok {
		return nil
	}

	view, err := h.service.RemoveItem(c.Context(), sid, req.Key())
	if err != nil {
		return writeError(c, err, "failed to remove cart item")
	}
	return c.JSON(view)
}

// SetRegion handles PUT /api/cart/region.
func (h *CartHandler) SetRegion(c *fiber.Ctx) error {
	sid := sessionID(c)

	var req model.SetRegionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	view, err := h.service.SetRegion(c.Context(), sid, req.Name)
	if err != nil {
		return writeError(c, err, "failed to set delivery region")
	}
	return c.JSON(view)
}

// ApplyPromoCode handles POST /api/cart/promo.
// A rejected code answers 422 with the reason and the unchanged cart.
func (h *CartHandler) ApplyPromoCode(c *fiber.Ctx) error {
	sid := sessionID(c)

	var req model.ValidatePromoCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	view, result, err := h.service.ApplyPromoCode(c.Context(), sid, req.Code)
	if err != nil {
		return writeError(c, err, "failed to apply promo code")
	}
	if !result.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  result.Message,
			"reason": result.Reason,
			"cart":   view,
		})
	}

	log.Info().
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("session_id", sid).
		Str("promo_code", view.Cart.AppliedPromo.Code).
		Int("discount_percentage", result.DiscountPercentage).
		Msg("promo code applied to cart")

	return c.JSON(view)
}

// RemovePromoCode handles DELETE /api/cart/promo.
func (h *CartHandler) RemovePromoCode(c *fiber.Ctx) error {
	view, err := h.service.RemovePromoCode(c.Context(), sessionID(c))
	if err != nil {
		return writeError(c, err, "failed to remove promo code")
	}
	return c.JSON(view)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	view, err := h.service.Clear(c.Context(), sessionID(c))
	if err != nil {
		return writeError(c, err, "failed to clear cart")
	}
	return c.JSON(view)
}

// parseLineItem reads a line item body. On failure it has already written the 400.
func (h *CartHandler) parseLineItem(c *fiber.Ctx) (model.LineItemRequest, bool) {
	var req model.LineItemRequest
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
		return req, false
	}
	return req, true
}
