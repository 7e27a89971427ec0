package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

func TestNoopRepositories(t *testing.T) {
	repos := NewNoopRepositories()

	if err := repos.QuoteLog.Create(context.Background(), &domain.QuoteLog{ID: uuid.New()}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := repos.QuoteLog.GetByID(context.Background(), uuid.New()); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repos.QuoteLog.Create(ctx, &domain.QuoteLog{}); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
