package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adilkhann/dayrep/internal/models"
)

// Reports fetches the user's reports without pagination, optionally
// filtered by exact date (yyyy-mm-dd) or tag.
func (c *Client) Reports(ctx context.Context, userID int64, date string, tagID int64) ([]models.Report, error) {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	if date != "" {
		query.Set("date", date)
	}
	if tagID > 0 {
		query.Set("tagId", strconv.FormatInt(tagID, 10))
	}

	var reports []models.Report
	if err := c.do(ctx, http.MethodGet, "/reports", query, nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ReportsPaged fetches one page of the filtered list. Sorting is delegated
// to the server. This is the one call with a client-side timeout, and the
// one call that degrades instead of failing: any transport or server error
// yields an empty page so the list view stays stable.
func (c *Client) ReportsPaged(ctx context.Context, userID int64, page, size int, date string, tagID int64, sortBy, sortDir string) (models.PagedResponse, error) {
	if sortBy == "" {
		sortBy = "date"
	}
	if sortDir == "" {
		sortDir = "desc"
	}

	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	query.Set("sortBy", sortBy)
	query.Set("sortDir", sortDir)
	if date != "" {
		query.Set("date", date)
	}
	if tagID > 0 {
		query.Set("tagId", strconv.FormatInt(tagID, 10))
	}

	ctx, cancel := context.WithTimeout(ctx, c.pagedTimeout)
	defer cancel()

	var res models.PagedResponse
	if err := c.do(ctx, http.MethodGet, "/reports/paged", query, nil, &res); err != nil {
		if c.debug {
			c.logger.Warn("paged report fetch failed, returning empty page", "error", err)
		}
		return models.EmptyPage(), nil
	}
	if res.Reports == nil {
		res.Reports = []models.Report{}
	}
	return res, nil
}

// SearchReports runs a free-text search across the user's reports.
func (c *Client) SearchReports(ctx context.Context, userID int64, term string) ([]models.Report, error) {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	query.Set("searchTerm", term)

	var reports []models.Report
	if err := c.do(ctx, http.MethodGet, "/reports/search", query, nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// SearchReportsPaged is the paged variant of SearchReports. Unlike
// ReportsPaged, errors propagate.
func (c *Client) SearchReportsPaged(ctx context.Context, userID int64, term string, page, size int) (models.PagedResponse, error) {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	query.Set("searchTerm", term)
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var res models.PagedResponse
	if err := c.do(ctx, http.MethodGet, "/reports/search/paged", query, nil, &res); err != nil {
		return models.PagedResponse{}, err
	}
	if res.Reports == nil {
		res.Reports = []models.Report{}
	}
	return res, nil
}

// ReportByID fetches a single report.
func (c *Client) ReportByID(ctx context.Context, id int64) (*models.Report, error) {
	var report models.Report
	path := fmt.Sprintf("/reports/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// CountReports returns the user's total report count, independent of any
// filter.
func (c *Client) CountReports(ctx context.Context, userID int64) (int64, error) {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))

	var count int64
	if err := c.do(ctx, http.MethodGet, "/reports/count", query, nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// CreateReport validates the report locally and submits it. Validation
// failures return a ValidationError without touching the network.
func (c *Client) CreateReport(ctx context.Context, report models.Report) (*models.Report, error) {
	if err := report.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	var created models.Report
	if err := c.do(ctx, http.MethodPost, "/reports", nil, report, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteReport removes a report. Deleting a nonexistent id surfaces as an
// APIError.
func (c *Client) DeleteReport(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/reports/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
