package domain

import "github.com/google/uuid"

type SummaryKind string

const (
	SummaryPlacement    SummaryKind = "placement"
	SummaryConfirmation SummaryKind = "confirmation"
)

type SummaryIssueKind string

const (
	// SummaryIssueComplete means the order was already complete before placement.
	SummaryIssueComplete   SummaryIssueKind = "complete"
	SummaryIssueProcessing SummaryIssueKind = "processing"
	SummaryIssueFailure    SummaryIssueKind = "failure"
	// SummaryIssueChanges means some line items were unavailable and dropped.
	SummaryIssueChanges SummaryIssueKind = "changes"
	SummaryIssueEmpty   SummaryIssueKind = "empty"
)

type SummaryIssue struct {
	Kind           SummaryIssueKind `json:"kind"`
	SubscriptionID uuid.UUID        `json:"subscription_id"`
	ProxyOrderID   uuid.UUID        `json:"proxy_order_id"`
	OrderID        *uuid.UUID       `json:"order_id,omitempty"`
	Message        string           `json:"message,omitempty"`
}

// ShopSummary counts the outcome of one batch run for one shop.
type ShopSummary struct {
	ShopID       uuid.UUID      `json:"shop_id"`
	OrderCount   int            `json:"order_count"`
	SuccessCount int            `json:"success_count"`
	Issues       []SummaryIssue `json:"issues"`
}

func (s ShopSummary) IssuesOf(kind SummaryIssueKind) []SummaryIssue {
	var issues []SummaryIssue
	for _, issue := range s.Issues {
		if issue.Kind == kind {
			issues = append(issues, issue)
		}
	}
	return issues
}
