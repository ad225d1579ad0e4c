package bff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"backoffice/pkg/domain"
)

// UsersAPI manages user accounts.
type UsersAPI struct {
	c *Client
}

// UserListParams filter and page the user list. Zero values are omitted from
// the query.
type UserListParams struct {
	Page   int
	Limit  int
	Search string
	Role   string
	Status string
}

func (p UserListParams) values() url.Values {
	q := url.Values{}
	setPage(q, p.Page, p.Limit)
	setNonEmpty(q, "search", p.Search)
	setNonEmpty(q, "role", p.Role)
	setNonEmpty(q, "status", p.Status)
	return q
}

// UserInput is the writable subset of a user record.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

func (a *UsersAPI) List(ctx context.Context, p UserListParams) (*Paginated[domain.User], error) {
	return callPaginated[domain.User](ctx, a.c, "/users", p.values(), "Failed to load users")
}

func (a *UsersAPI) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := callEnvelope[domain.User](ctx, a.c, http.MethodGet, "/users/"+id, nil, nil, "Failed to load user")
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *UsersAPI) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	u, err := callEnvelope[domain.User](ctx, a.c, http.MethodPost, "/users", nil, input, "Failed to create user")
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *UsersAPI) Update(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	u, err := callEnvelope[domain.User](ctx, a.c, http.MethodPut, "/users/"+id, nil, input, "Failed to update user")
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *UsersAPI) Delete(ctx context.Context, id string) error {
	_, err := callEnvelope[json.RawMessage](ctx, a.c, http.MethodDelete, "/users/"+id, nil, nil, "Failed to delete user")
	return err
}

func (a *UsersAPI) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	body := map[string]string{"status": string(status)}
	u, err := callEnvelope[domain.User](ctx, a.c, http.MethodPatch, "/users/"+id+"/status", nil, body, "Failed to update user status")
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// setPage adds pagination params, omitting zero values.
func setPage(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

func setNonEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
