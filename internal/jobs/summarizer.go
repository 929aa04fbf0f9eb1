package jobs

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
)

// Summarizer accumulates per-shop outcomes of one batch run. A shop summary
// is created on first reference and reused for the rest of the run.
type Summarizer struct {
	mu        sync.Mutex
	summaries map[uuid.UUID]*domain.ShopSummary
	shops     []uuid.UUID
}

func NewSummarizer() *Summarizer {
	return &Summarizer{summaries: make(map[uuid.UUID]*domain.ShopSummary)}
}

func (s *Summarizer) summaryFor(shopID uuid.UUID) *domain.ShopSummary {
	summary, ok := s.summaries[shopID]
	if !ok {
		summary = &domain.ShopSummary{ShopID: shopID}
		s.summaries[shopID] = summary
		s.shops = append(s.shops, shopID)
	}
	return summary
}

// RecordOrder counts an attempted order.
func (s *Summarizer) RecordOrder(shopID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaryFor(shopID).OrderCount++
}

func (s *Summarizer) RecordSuccess(shopID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaryFor(shopID).SuccessCount++
}

func (s *Summarizer) RecordIssue(shopID uuid.UUID, issue domain.SummaryIssue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := s.summaryFor(shopID)
	summary.Issues = append(summary.Issues, issue)
}

// Merge adds the counts and issues of other into s.
func (s *Summarizer) Merge(other *Summarizer) {
	if other == nil || other == s {
		return
	}

	for _, summary := range other.Summaries() {
		s.mu.Lock()
		target := s.summaryFor(summary.ShopID)
		target.OrderCount += summary.OrderCount
		target.SuccessCount += summary.SuccessCount
		target.Issues = append(target.Issues, summary.Issues...)
		s.mu.Unlock()
	}
}

// Summaries returns copies in the order shops were first referenced.
func (s *Summarizer) Summaries() []domain.ShopSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.ShopSummary, 0, len(s.shops))
	for _, shopID := range s.shops {
		summary := *s.summaries[shopID]
		summary.Issues = slices.Clone(summary.Issues)
		result = append(result, summary)
	}

	return result
}

func (s *Summarizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries = make(map[uuid.UUID]*domain.ShopSummary)
	s.shops = nil
}

// recordFailure records a proxy order that failed before its subscription was
// known, attributing it to shopID.
func recordFailure(summarizer *Summarizer, shopID uuid.UUID, po domain.ProxyOrder, cause error) {
	summarizer.RecordOrder(shopID)
	summarizer.RecordIssue(shopID, domain.SummaryIssue{
		Kind:           domain.SummaryIssueFailure,
		SubscriptionID: po.SubscriptionID,
		ProxyOrderID:   po.ID,
		OrderID:        po.OrderID,
		Message:        cause.Error(),
	})
}
