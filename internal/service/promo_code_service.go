package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
	"github.com/fairyhunter13/storefront-checkout/internal/pricing"
	"github.com/fairyhunter13/storefront-checkout/pkg/database"
)

// Promo code creation bounds.
const (
	MinDiscountPercentage = 5
	MaxDiscountPercentage = 70
	defaultCreatedBy      = "admin"
)

// PromoCodeRepositoryInterface defines the interface for promo code data access.
type PromoCodeRepositoryInterface interface {
	Insert(ctx context.Context, code *model.PromoCode) error
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
	List(ctx context.Context) ([]model.PromoCode, error)
	GetForUpdate(ctx context.Context, tx database.TxQuerier, id string) (*model.PromoCode, error)
	IncrementUsage(ctx context.Context, tx database.TxQuerier, id string) error
	Delete(ctx context.Context, id string) error
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PromoCodeService provides business logic for promo codes.
type PromoCodeService struct {
	pool TxBeginner
	repo PromoCodeRepositoryInterface
	now  func() time.Time
}

// NewPromoCodeService creates a new PromoCodeService with the given pool and repository.
func NewPromoCodeService(pool *pgxpool.Pool, repo PromoCodeRepositoryInterface) *PromoCodeService {
	return &PromoCodeService{pool: pool, repo: repo, now: time.Now}
}

// NewPromoCodeServiceWithTxBeginner creates a PromoCodeService with a custom TxBeginner.
// Primarily used for testing.
func NewPromoCodeServiceWithTxBeginner(pool TxBeginner, repo PromoCodeRepositoryInterface) *PromoCodeService {
	return &PromoCodeService{pool: pool, repo: repo, now: time.Now}
}

// NormalizeCode uppercases and trims a promo code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create validates the request and persists a new promo code.
// Returns a *ValidationError for out-of-bounds input and ErrPromoCodeExists for duplicates.
func (s *PromoCodeService) Create(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, invalid("code", "promo code name is required")
	}
	if req.DiscountPercentage == nil ||
		*req.DiscountPercentage < MinDiscountPercentage ||
		*req.DiscountPercentage > MaxDiscountPercentage {
		return nil, invalid("discountPercentage", "discount percentage must be between 5 and 70")
	}
	if req.UsageLimit == nil || *req.UsageLimit < 1 {
		return nil, invalid("usageLimit", "usage limit must be at least 1")
	}
	if req.ValidityDays == nil || *req.ValidityDays < 1 {
		return nil, invalid("validityDays", "validity days must be at least 1")
	}

	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		createdBy = defaultCreatedBy
	}

	now := s.now().UTC()
	promo := &model.PromoCode{
		ID:                 uuid.NewString(),
		Code:               code,
		DiscountPercentage: *req.DiscountPercentage,
		UsageLimit:         *req.UsageLimit,
		UsedCount:          0,
		IsActive:           true,
		CreatedBy:          createdBy,
		CreatedAt:          now,
		ExpiresAt:          now.Add(time.Duration(*req.ValidityDays) * 24 * time.Hour),
	}
	if err := s.repo.Insert(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// List returns every promo code, newest first, with its status at call time.
func (s *PromoCodeService) List(ctx context.Context) ([]model.PromoCodeResponse, error) {
	codes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}

	now := s.now()
	out := make([]model.PromoCodeResponse, 0, len(codes))
	for i := range codes {
		out = append(out, model.PromoCodeResponse{PromoCode: codes[i], Status: codes[i].StatusAt(now)})
	}
	return out, nil
}

// GetByCode returns a promo code by its (normalized) name.
// Returns ErrPromoCodeNotFound if no code matches.
func (s *PromoCodeService) GetByCode(ctx context.Context, code string) (*model.PromoCodeResponse, error) {
	promo, err := s.repo.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("get promo code: %w", err)
	}
	if promo == nil {
		return nil, ErrPromoCodeNotFound
	}
	return &model.PromoCodeResponse{PromoCode: *promo, Status: promo.StatusAt(s.now())}, nil
}

// Validate checks whether a code can be used right now.
// Checks run in order: existence, active flag, expiry, usage limit.
// Store failures are logged and reported as ReasonValidationError.
func (s *PromoCodeService) Validate(ctx context.Context, code string) *model.ValidationResult {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return model.NewRejection(model.ReasonEmptyCode)
	}

	promo, err := s.repo.GetByCode(ctx, normalized)
	if err != nil {
		log.Error().Err(err).Str("promo_code", normalized).Msg("failed to look up promo code")
		return model.NewRejection(model.ReasonValidationError)
	}
	if promo == nil {
		return model.NewRejection(model.ReasonNotFound)
	}
	if !promo.IsActive {
		return model.NewRejection(model.ReasonInactive)
	}
	if s.now().After(promo.ExpiresAt) {
		return model.NewRejection(model.ReasonExpired)
	}
	if promo.UsedCount >= promo.UsageLimit {
		return model.NewRejection(model.ReasonUsageLimitReached)
	}

	return &model.ValidationResult{
		Valid:              true,
		Reason:             model.ReasonValid,
		Message:            model.ReasonValid.Message(),
		DiscountPercentage: promo.DiscountPercentage,
		PromoCode:          promo,
	}
}

// ComputeDiscountAmount returns the whole-unit discount for a subtotal.
func (s *PromoCodeService) ComputeDiscountAmount(subtotal model.Money, discountPercentage int) model.Money {
	return pricing.DiscountAmount(subtotal, discountPercentage)
}

// Apply records one use of the code with the given id.
// Uses SELECT FOR UPDATE so concurrent checkouts cannot push used_count past usage_limit.
// Returns:
//   - ErrPromoCodeNotFound if the code doesn't exist
//   - ErrUsageLimitReached if no uses are left
func (s *PromoCodeService) Apply(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	promo, err := s.repo.GetForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, ErrPromoCodeNotFound) {
			return ErrPromoCodeNotFound
		}
		return fmt.Errorf("get promo code for update: %w", err)
	}

	if promo.UsedCount >= promo.UsageLimit {
		return ErrUsageLimitReached
	}

	if err := s.repo.IncrementUsage(ctx, tx, id); err != nil {
		if errors.Is(err, ErrUsageLimitReached) {
			return ErrUsageLimitReached
		}
		return fmt.Errorf("increment usage: %w", err)
	}

	return tx.Commit(ctx)
}

// Delete permanently removes a promo code.
func (s *PromoCodeService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
