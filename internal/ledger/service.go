package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/logger"
	"github.com/vantol/PackForge_Go/internal/metrics"
	"github.com/vantol/PackForge_Go/internal/repository"
)

// Service is the sole authority on card availability. Every issuance in
// the system, direct path or listener path, goes through Issue.
type Service interface {
	IsIssued(ctx context.Context, key domain.CardKey) (bool, error)
	Issue(ctx context.Context, key domain.CardKey, ownerID string, tier int) error
	EntriesByOwner(ctx context.Context, ownerID string) ([]domain.LedgerEntry, error)
	Stats(ctx context.Context, catalogSize int) (*domain.LedgerStats, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

// IsIssued reports whether the identity already has an owner
func (s *service) IsIssued(ctx context.Context, key domain.CardKey) (bool, error) {
	issued, err := s.repo.IsIssued(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextAvailabilityCheck, err)
	}
	return issued, nil
}

// Issue grants the card to ownerID, permanently. Returns
// domain.ErrAlreadyIssued when the identity is taken; callers racing on the
// same card should retry their lottery selection on that error.
func (s *service) Issue(ctx context.Context, key domain.CardKey, ownerID string, tier int) error {
	entry := domain.LedgerEntry{
		Key:      key,
		OwnerID:  ownerID,
		Tier:     tier,
		IssuedAt: time.Now().UTC(),
	}

	if err := s.repo.Issue(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrAlreadyIssued) {
			metrics.IssueConflicts.Inc()
			return err
		}
		return fmt.Errorf("%s: %w", ErrContextIssueFailed, err)
	}

	metrics.CardsIssued.WithLabelValues(strconv.Itoa(tier)).Inc()
	logger.FromContext(ctx).Debug(LogMsgCardIssued, "card", key.String(), "owner", ownerID, "tier", tier)
	return nil
}

// EntriesByOwner returns every entry issued to one owner (audit/debug)
func (s *service) EntriesByOwner(ctx context.Context, ownerID string) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.EntriesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextOwnerQuery, err)
	}
	return entries, nil
}

// Stats summarizes issuance against the catalog size
func (s *service) Stats(ctx context.Context, catalogSize int) (*domain.LedgerStats, error) {
	issued, err := s.repo.IssuedCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextStatsQuery, err)
	}

	stats := &domain.LedgerStats{
		Issued:    issued,
		Available: catalogSize - issued,
	}
	if catalogSize > 0 {
		stats.PercentIssued = float64(issued) / float64(catalogSize) * 100
	}
	return stats, nil
}
