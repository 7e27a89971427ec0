package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

// QuoteLogRepository stores summaries of issued quotes
type QuoteLogRepository interface {
	Create(ctx context.Context, log *domain.QuoteLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteLog, error)
}

// Repositories groups the storage backends used by the API
type Repositories struct {
	QuoteLog QuoteLogRepository
}

// NewNoopRepositories is used when no database is configured.
// Writes are dropped and every lookup is a not-found.
func NewNoopRepositories() *Repositories {
	return &Repositories{
		QuoteLog: noopQuoteLogRepository{},
	}
}

type noopQuoteLogRepository struct{}

func (noopQuoteLogRepository) Create(ctx context.Context, log *domain.QuoteLog) error {
	return ctx.Err()
}

func (noopQuoteLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, &errors.ErrNotFound{Resource: "quote", ID: id.String()}
}
