package handler

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
)

// PromoCodeServiceInterface defines the interface for promo code business logic.
type PromoCodeServiceInterface interface {
	Create(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error)
	List(ctx context.Context) ([]model.PromoCodeResponse, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, code string) *model.ValidationResult
}

// PromoCodeHandler handles HTTP requests for promo code administration and validation.
type PromoCodeHandler struct {
	service   PromoCodeServiceInterface
	validator *validator.Validate
}

// NewPromoCodeHandler creates a new PromoCodeHandler with the given service and validator.
func NewPromoCodeHandler(svc PromoCodeServiceInterface, v *validator.Validate) *PromoCodeHandler {
	return &PromoCodeHandler{service: svc, validator: v}
}

// Create handles POST /api/admin/promo-codes.
func (h *PromoCodeHandler) Create(c *fiber.Ctx) error {
	var req model.CreatePromoCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	promo, err := h.service.Create(c.Context(), &req)
	if err != nil {
		return writeError(c, err, "failed to create promo code")
	}

	log.Info().
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("promo_code", promo.Code).
		Int("discount_percentage", promo.DiscountPercentage).
		Int("usage_limit", promo.UsageLimit).
		Time("expires_at", promo.ExpiresAt).
		Msg("promo code created")

	return c.Status(fiber.StatusCreated).JSON(model.PromoCodeResponse{
		PromoCode: *promo,
		Status:    promo.StatusAt(time.Now()),
	})
}

// List handles GET /api/admin/promo-codes.
func (h *PromoCodeHandler) List(c *fiber.Ctx) error {
	codes, err := h.service.List(c.Context())
	if err != nil {
		return writeError(c, err, "failed to list promo codes")
	}
	return c.JSON(codes)
}

// Delete handles DELETE /api/admin/promo-codes/:id.
func (h *PromoCodeHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id is required"})
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return writeError(c, err, "failed to delete promo code")
	}

	log.Info().
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("promo_code_id", id).
		Msg("promo code deleted")

	return c.SendStatus(fiber.StatusNoContent)
}

// Validate handles POST /api/promo-codes/validate.
// Always 200; the body says whether the code is usable and why not.
func (h *PromoCodeHandler) Validate(c *fiber.Ctx) error {
	var req model.ValidatePromoCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}
	return c.JSON(h.service.Validate(c.Context(), req.Code))
}
