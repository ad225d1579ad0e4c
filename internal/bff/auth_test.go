package bff

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/session"
	"backoffice/pkg/domain"
)

func TestLoginMapsBackendPayload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.com", creds["email"])

		w.Write([]byte(`{
			"jwt": "t1",
			"refreshToken": "r1",
			"user": {
				"_id": "u1",
				"firstName": "A",
				"lastName": "B",
				"email": "a@b.com",
				"roles": ["admin"],
				"isActive": true,
				"createdAt": "2024-01-01T00:00:00Z"
			}
		}`)) //nolint:errcheck
	})

	c := newTestClient(t, handler, session.NewInMemory(), nil)
	res := c.Auth.Login(context.Background(), "a@b.com", "pw")

	require.True(t, res.Success, "message: %s", res.Message)
	assert.Equal(t, "t1", res.Data.Token)
	assert.Equal(t, "r1", res.Data.RefreshToken)

	u := res.Data.User
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "A B", u.Name)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, domain.UserStatusActive, u.Status)
	assert.Equal(t, "2024-01-01T00:00:00Z", u.CreatedAt)
}

func TestLoginMalformedPayloadFailsWithoutError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing jwt", `{"user":{"_id":"u1","firstName":"A","lastName":"B"}}`},
		{"missing user", `{"jwt":"t1"}`},
		{"empty object", `{}`},
		{"server-stated reason", `{"error":{"message":"account locked"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body)) //nolint:errcheck
			})
			c := newTestClient(t, handler, session.NewInMemory(), nil)

			res := c.Auth.Login(context.Background(), "a@b.com", "pw")
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Message)
			assert.Nil(t, res.Data.User)
		})
	}
}

func TestLoginRejectionUsesServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid credentials"}}`)) //nolint:errcheck
	})

	c := newTestClient(t, handler, session.NewInMemory(), nil)
	res := c.Auth.Login(context.Background(), "a@b.com", "wrong")
	assert.False(t, res.Success)
	assert.Equal(t, "invalid credentials", res.Message)
}

func TestLoginUnreachableBFF(t *testing.T) {
	store := session.NewInMemory()
	c, err := New(Options{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Store:   store,
		Logger:  testLogger(),
	})
	require.NoError(t, err)

	res := c.Auth.Login(context.Background(), "a@b.com", "pw")
	assert.False(t, res.Success)
	assert.Equal(t, "Login failed", res.Message)
}

func TestVerify(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/verify", r.URL.Path)
			w.Write([]byte(`{"valid":true}`)) //nolint:errcheck
		})
		c := newTestClient(t, handler, session.NewInMemory(), nil)

		res := c.Auth.Verify(context.Background())
		assert.True(t, res.Success)
	})

	t.Run("rejected resolves instead of failing", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		c := newTestClient(t, handler, session.NewInMemory(), nil)

		res := c.Auth.Verify(context.Background())
		assert.False(t, res.Success)
		assert.Equal(t, "Token verification failed", res.Message)
	})
}

func TestLogoutSendsStoredRefreshToken(t *testing.T) {
	var sent map[string]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/logout", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.Write([]byte(`{"message":"bye"}`)) //nolint:errcheck
	})

	ctx := context.Background()
	store := session.NewInMemory()
	require.NoError(t, store.Set(ctx, &session.Session{AccessToken: "tok", RefreshToken: "ref-9"}))

	c := newTestClient(t, handler, store, nil)
	res := c.Auth.Logout(ctx)
	require.True(t, res.Success)
	assert.Equal(t, "bye", res.Message)
	assert.Equal(t, "ref-9", sent["refreshToken"])
}

func TestMapBackendUser(t *testing.T) {
	tests := []struct {
		name string
		in   backendUser
		want func(t *testing.T, u *domain.User)
	}{
		{
			name: "mongo id wins over plain id",
			in:   backendUser{MongoID: "m1", ID: "p1"},
			want: func(t *testing.T, u *domain.User) { assert.Equal(t, "m1", u.ID) },
		},
		{
			name: "plain id is the fallback",
			in:   backendUser{ID: "p1"},
			want: func(t *testing.T, u *domain.User) { assert.Equal(t, "p1", u.ID) },
		},
		{
			name: "admin among roles makes admin primary",
			in:   backendUser{Roles: []string{"customer", "admin"}},
			want: func(t *testing.T, u *domain.User) { assert.Equal(t, domain.RoleAdmin, u.Role) },
		},
		{
			name: "no roles defaults to customer",
			in:   backendUser{},
			want: func(t *testing.T, u *domain.User) { assert.Equal(t, domain.RoleCustomer, u.Role) },
		},
		{
			name: "inactive flag maps to inactive status",
			in:   backendUser{IsActive: false},
			want: func(t *testing.T, u *domain.User) { assert.Equal(t, domain.UserStatusInactive, u.Status) },
		},
		{
			name: "missing timestamps are filled in",
			in:   backendUser{IsActive: true},
			want: func(t *testing.T, u *domain.User) {
				assert.NotEmpty(t, u.CreatedAt)
				assert.NotEmpty(t, u.LastLogin)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, mapBackendUser(&tt.in))
		})
	}
}
