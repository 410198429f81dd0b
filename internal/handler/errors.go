package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/storefront-checkout/internal/region"
	"github.com/fairyhunter13/storefront-checkout/internal/service"
)

// formatValidationError converts validator errors to field-specific messages.
// Only the first failing field is reported.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "invalid request"
	}

	fe := ve[0]
	field, tag := fe.Field(), fe.Tag()
	switch field {
	case "code":
		switch tag {
		case "required", "notblank":
			return "invalid request: promo code is required"
		case "max":
			return "invalid request: promo code exceeds maximum length of 64"
		}
	case "discountPercentage":
		return "invalid request: discountPercentage must be between 5 and 70"
	case "usageLimit":
		return "invalid request: usageLimit must be at least 1"
	case "validityDays":
		return "invalid request: validityDays must be at least 1"
	case "quantity":
		return "invalid request: quantity cannot be negative"
	}

	switch tag {
	case "required", "notblank":
		return "invalid request: " + field + " is required"
	case "max":
		return "invalid request: " + field + " exceeds maximum length of " + fe.Param()
	}
	return "invalid request: " + field + " is invalid"
}

// errorResponse maps a service error to an HTTP status and client-facing message.
func errorResponse(err error) (int, string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Error()
	case errors.Is(err, service.ErrInvalidRequest):
		return fiber.StatusBadRequest, "invalid request"
	case errors.Is(err, region.ErrUnknownRegion):
		return fiber.StatusBadRequest, "unknown delivery region"
	case errors.Is(err, service.ErrEmptyCart):
		return fiber.StatusBadRequest, "cart is empty"
	case errors.Is(err, service.ErrRegionRequired):
		return fiber.StatusBadRequest, "please select a delivery region"
	case errors.Is(err, service.ErrProductNotFound):
		return fiber.StatusNotFound, "product not found"
	case errors.Is(err, service.ErrPromoCodeNotFound):
		return fiber.StatusNotFound, "promo code not found"
	case errors.Is(err, service.ErrPromoCodeExists):
		return fiber.StatusConflict, "promo code already exists"
	case errors.Is(err, service.ErrProductSoldOut):
		return fiber.StatusConflict, "product is sold out"
	}
	return fiber.StatusInternalServerError, "internal server error"
}

// writeError sends the mapped error response. Unexpected errors are logged with msg.
func writeError(c *fiber.Ctx, err error, msg string) error {
	status, message := errorResponse(err)
	if status == fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg(msg)
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
