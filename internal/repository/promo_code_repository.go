package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
	"github.com/fairyhunter13/storefront-checkout/internal/service"
	"github.com/fairyhunter13/storefront-checkout/pkg/database"
)

// PostgreSQL error codes handled by the repositories.
const (
	pgUniqueViolation     = "23505"
	pgInvalidTextEncoding = "22P02"
)

const promoCodeColumns = `id::text, code, discount_percentage, usage_limit, used_count, is_active, created_by, created_at, expires_at`

// PoolInterface defines the database operations needed by repositories.
// This allows for easier testing with mocks.
type PoolInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PromoCodeRepository provides data access for promo codes using pgx.
type PromoCodeRepository struct {
	pool PoolInterface
}

// NewPromoCodeRepository creates a new PromoCodeRepository with the given pool.
func NewPromoCodeRepository(pool *pgxpool.Pool) *PromoCodeRepository {
	return &PromoCodeRepository{pool: pool}
}

// NewPromoCodeRepositoryWithPool creates a new PromoCodeRepository with a custom pool interface.
// This is primarily used for testing.
func NewPromoCodeRepositoryWithPool(pool PoolInterface) *PromoCodeRepository {
	return &PromoCodeRepository{pool: pool}
}

// Insert stores a new promo code.
// Returns service.ErrPromoCodeExists if the code name is already taken.
func (r *PromoCodeRepository) Insert(ctx context.Context, p *model.PromoCode) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO promo_codes (id, code, discount_percentage, usage_limit, used_count, is_active, created_by, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Code, p.DiscountPercentage, p.UsageLimit, p.UsedCount, p.IsActive, p.CreatedBy, p.CreatedAt, p.ExpiresAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return service.ErrPromoCodeExists
		}
		return fmt.Errorf("insert promo code: %w", err)
	}
	return nil
}

// GetByCode retrieves a promo code by its normalized name.
// Returns nil, nil if the code is not found (service layer handles this).
func (r *PromoCodeRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `SELECT ` + promoCodeColumns + ` FROM promo_codes WHERE code = $1`

	p, err := scanPromoCode(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promo code %s: %w", code, err)
	}
	return p, nil
}

// List returns every promo code, newest first.
func (r *PromoCodeRepository) List(ctx context.Context) ([]model.PromoCode, error) {
	query := `SELECT ` + promoCodeColumns + ` FROM promo_codes ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	defer rows.Close()

	codes := []model.PromoCode{}
	for rows.Next() {
		p, err := scanPromoCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promo code: %w", err)
		}
		codes = append(codes, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	return codes, nil
}

// GetForUpdate retrieves a promo code with a row lock (SELECT FOR UPDATE).
// The lock is held until the transaction completes.
// Returns service.ErrPromoCodeNotFound if the code doesn't exist.
func (r *PromoCodeRepository) GetForUpdate(ctx context.Context, tx database.TxQuerier, id string) (*model.PromoCode, error) {
	query := `SELECT ` + promoCodeColumns + ` FROM promo_codes WHERE id = $1 FOR UPDATE`

	p, err := scanPromoCode(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isPgError(err, pgInvalidTextEncoding) {
			return nil, service.ErrPromoCodeNotFound
		}
		return nil, fmt.Errorf("get promo code for update %s: %w", id, err)
	}
	return p, nil
}

// IncrementUsage records one use of a promo code and deactivates it once the limit is hit.
// The WHERE clause refuses to go past usage_limit, so a zero row count means no uses are left.
// Must be called within a transaction after locking the row.
func (r *PromoCodeRepository) IncrementUsage(ctx context.Context, tx database.TxQuerier, id string) error {
	query := `UPDATE promo_codes
		SET used_count = used_count + 1,
		    is_active = CASE WHEN used_count + 1 >= usage_limit THEN FALSE ELSE is_active END
		WHERE id = $1 AND used_count < usage_limit`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment usage for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrUsageLimitReached
	}
	return nil
}

// Delete permanently removes a promo code.
// Returns service.ErrPromoCodeNotFound if nothing was deleted.
func (r *PromoCodeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		if isPgError(err, pgInvalidTextEncoding) {
			return service.ErrPromoCodeNotFound
		}
		return fmt.Errorf("delete promo code %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrPromoCodeNotFound
	}
	return nil
}

func scanPromoCode(row pgx.Row) (*model.PromoCode, error) {
	var p model.PromoCode
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.DiscountPercentage,
		&p.UsageLimit,
		&p.UsedCount,
		&p.IsActive,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
