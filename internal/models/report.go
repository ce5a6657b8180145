package models

import (
	"fmt"
	"strings"
	"time"
)

// Report is a single daily work report as served by the API. Reports are
// created and deleted from this client, never updated; the server assigns ID.
type Report struct {
	ID             int64   `json:"id,omitempty"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Date           string  `json:"date"` // ISO date, yyyy-mm-dd
	TagID          int64   `json:"tagId"`
	UserID         int64   `json:"userId"`
	Progress       int     `json:"progress"`
	RemainingHours float64 `json:"remainingHours"`
	Issue          string  `json:"issue,omitempty"`
	Solution       string  `json:"solution,omitempty"`
}

// Tag classifies a report. Read-only from the client's perspective.
type Tag struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// PagedResponse is one page of reports plus position and total-count
// metadata. It is a snapshot regenerated on every query.
type PagedResponse struct {
	Reports     []Report `json:"reports"`
	CurrentPage int      `json:"currentPage"`
	TotalItems  int64    `json:"totalItems"`
	TotalPages  int      `json:"totalPages"`
}

// EmptyPage returns the benign zero-result page used when a paged list
// fetch fails.
func EmptyPage() PagedResponse {
	return PagedResponse{Reports: []Report{}}
}

// Validate checks the report against the preconditions enforced before any
// create request is issued.
func (r Report) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	if strings.TrimSpace(r.Date) == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("date must be yyyy-mm-dd")
	}
	if r.Progress < 0 || r.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	if r.RemainingHours < 0 {
		return fmt.Errorf("remaining hours cannot be negative")
	}
	return nil
}
