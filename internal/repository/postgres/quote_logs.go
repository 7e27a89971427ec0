package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

type quoteLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewQuoteLogRepository creates a new quote log repository
func NewQuoteLogRepository(db *sql.DB, logger *zap.Logger) *quoteLogRepository {
	return &quoteLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *quoteLogRepository) Create(ctx context.Context, log *domain.QuoteLog) error {
	query := `
		INSERT INTO quote_logs (id, request_hash, country, currency, item_count, total_qty, total,
			needs_review, eta_min, eta_max, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.RequestHash,
		log.Country,
		string(log.Currency),
		log.ItemCount,
		log.TotalQty,
		log.Total.String(),
		log.NeedsReview,
		log.ETAMin,
		log.ETAMax,
		log.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create quote log", zap.Error(err))
		return err
	}

	return nil
}

func (r *quoteLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteLog, error) {
	query := `
		SELECT id, request_hash, country, currency, item_count, total_qty, total,
			needs_review, eta_min, eta_max, created_at
		FROM quote_logs
		WHERE id = $1
	`

	var log domain.QuoteLog
	var currency, total string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&log.ID,
		&log.RequestHash,
		&log.Country,
		&currency,
		&log.ItemCount,
		&log.TotalQty,
		&total,
		&log.NeedsReview,
		&log.ETAMin,
		&log.ETAMax,
		&log.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "quote", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get quote log by ID", zap.Error(err))
		return nil, err
	}

	log.Currency = domain.Currency(currency)
	if log.Total, err = decimal.NewFromString(total); err != nil {
		r.logger.Error("Invalid stored quote total", zap.String("total", total), zap.Error(err))
		return nil, err
	}

	return &log, nil
}
