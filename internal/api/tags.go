package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/adilkhann/dayrep/internal/models"
)

// Tags fetches all classification tags. The set is small and bounded, so
// there is no pagination.
func (c *Client) Tags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := c.do(ctx, http.MethodGet, "/tags", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// TagByID fetches a single tag.
func (c *Client) TagByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	path := fmt.Sprintf("/tags/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag adds a tag. Admin-only on the server side.
func (c *Client) CreateTag(ctx context.Context, tag models.Tag) (*models.Tag, error) {
	var created models.Tag
	if err := c.do(ctx, http.MethodPost, "/tags", nil, tag, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
