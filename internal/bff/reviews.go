package bff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"backoffice/pkg/domain"
)

// ReviewsAPI moderates product reviews.
type ReviewsAPI struct {
	c *Client
}

// ReviewListParams filter and page the review queue.
type ReviewListParams struct {
	Page   int
	Limit  int
	Search string
	Status string
	Rating int
}

func (p ReviewListParams) values() url.Values {
	q := url.Values{}
	setPage(q, p.Page, p.Limit)
	setNonEmpty(q, "search", p.Search)
	setNonEmpty(q, "status", p.Status)
	if p.Rating > 0 {
		q.Set("rating", strconv.Itoa(p.Rating))
	}
	return q
}

func (a *ReviewsAPI) List(ctx context.Context, p ReviewListParams) (*Paginated[domain.Review], error) {
	return callPaginated[domain.Review](ctx, a.c, "/reviews", p.values(), "Failed to load reviews")
}

func (a *ReviewsAPI) Get(ctx context.Context, id string) (*domain.Review, error) {
	r, err := callEnvelope[domain.Review](ctx, a.c, http.MethodGet, "/reviews/"+id, nil, nil, "Failed to load review")
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateStatus approves or rejects a review.
func (a *ReviewsAPI) UpdateStatus(ctx context.Context, id string, status domain.ReviewStatus) (*domain.Review, error) {
	body := map[string]string{"status": string(status)}
	r, err := callEnvelope[domain.Review](ctx, a.c, http.MethodPatch, "/reviews/"+id+"/status", nil, body, "Failed to update review status")
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (a *ReviewsAPI) Delete(ctx context.Context, id string) error {
	_, err := callEnvelope[json.RawMessage](ctx, a.c, http.MethodDelete, "/reviews/"+id, nil, nil, "Failed to delete review")
	return err
}
