// A toy BFF for exercising the admin console end to end without the real
// backend. It serves canned fixtures behind the same routes and envelopes the
// real BFF uses, and mints HMAC-signed tokens so the verify endpoint has
// something to check.
package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type paginated struct {
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func main() {
	port := getenv("PORT", "3100")
	signingKey := []byte(getenv("JWT_SIGNING_KEY", "lab-secret"))

	s := &server{key: signingKey, fixtures: newFixtures()}

	r := chi.NewRouter()

	r.Post("/api/auth/login", s.login)
	r.Post("/api/auth/logout", s.logout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)

		r.Get("/api/auth/verify", s.verify)

		r.Route("/api/admin/dashboard", func(r chi.Router) {
			r.Get("/stats", s.stats)
			r.Get("/recent-orders", s.recentOrders)
			r.Get("/recent-users", s.recentUsers)
			r.Get("/analytics", s.analytics)
		})

		s.mountResource(r, "users", s.fixtures.users, nil)
		s.mountResource(r, "products", s.fixtures.products, nil)
		s.mountResource(r, "reviews", s.fixtures.reviews, nil)
		s.mountResource(r, "orders", s.fixtures.orders, func(r chi.Router) {
			r.Patch("/{id}/tracking", s.patchOrderField("trackingNumber"))
			r.Post("/{id}/notes", s.patchOrderField("note"))
		})
		s.mountResource(r, "inventory", s.fixtures.inventory, func(r chi.Router) {
			r.Patch("/{id}/stock", s.adjustStock)
			r.Get("/{id}/movements", s.movements)
		})
	})

	addr := ":" + port
	log.Printf("mock BFF listening on %s (login: %s / %s)", addr, adminEmail, adminPassword)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

type server struct {
	key      []byte
	fixtures *fixtures
}

// requireToken rejects requests without a valid bearer token. The console's
// 401 teardown path keys off the status code alone, so the body stays minimal.
func (s *server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" || !s.validToken(token) {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "Invalid or expired token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": "malformed request body"}})
		return
	}
	if body.Email != adminEmail || body.Password != adminPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]string{"message": "Invalid email or password"}})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"jwt":          s.mintToken(body.Email),
		"refreshToken": "lab-refresh-" + strconv.FormatInt(time.Now().Unix(), 10),
		"user": map[string]any{
			"_id":         "usr-admin-001",
			"email":       adminEmail,
			"firstName":   "Ada",
			"lastName":    "Admin",
			"roles":       []string{"admin", "customer"},
			"isActive":    true,
			"createdAt":   "2024-01-15T09:00:00Z",
			"lastLoginAt": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *server) verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]string{"status": "valid"}})
}

func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: s.fixtures.stats})
}

func (s *server) recentOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: s.fixtures.orders.recent(5)})
}

func (s *server) recentUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: s.fixtures.users.recent(5)})
}

func (s *server) analytics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "7d"
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: s.fixtures.analyticsFor(period)})
}

// mountResource wires the uniform CRUD surface for one fixture collection,
// plus any resource-specific extra routes.
func (s *server) mountResource(r chi.Router, name string, col *collection, extra func(chi.Router)) {
	r.Route("/"+name, func(r chi.Router) {
		if extra != nil {
			extra(r)
		}
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			page, limit := pageParams(r)
			items := col.list(r.URL.Query().Get("search"))
			total := len(items)
			writeJSON(w, http.StatusOK, paginated{
				Data: slicePage(items, page, limit),
				Pagination: pagination{
					Page:       page,
					Limit:      limit,
					Total:      total,
					TotalPages: (total + limit - 1) / limit,
				},
			})
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			item, err := col.create(r.Body)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: err.Error()})
				return
			}
			writeJSON(w, http.StatusCreated, envelope{Success: true, Data: item})
		})
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			item, ok := col.get(chi.URLParam(r, "id"))
			if !ok {
				writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: "not found"})
				return
			}
			writeJSON(w, http.StatusOK, envelope{Success: true, Data: item})
		})
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			item, err := col.update(chi.URLParam(r, "id"), r.Body)
			if err != nil {
				writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, envelope{Success: true, Data: item})
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			if !col.delete(chi.URLParam(r, "id")) {
				writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: "not found"})
				return
			}
			writeJSON(w, http.StatusOK, envelope{Success: true, Message: "deleted"})
		})
		r.Patch("/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Status string `json:"status"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
				writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "status is required"})
				return
			}
			item, err := col.setField(chi.URLParam(r, "id"), "status", body.Status)
			if err != nil {
				writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, envelope{Success: true, Data: item})
		})
	})
}

// patchOrderField updates one named field on an order from the request body's
// matching key. Notes are additive in the real BFF; the fixture just replaces.
func (s *server) patchOrderField(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "malformed request body"})
			return
		}
		value, ok := body[field]
		if !ok {
			writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: field + " is required"})
			return
		}
		item, err := s.fixtures.orders.setField(chi.URLParam(r, "id"), field, value)
		if err != nil {
			writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: item})
	}
}

func (s *server) adjustStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "malformed request body"})
		return
	}
	id := chi.URLParam(r, "id")
	item, err := s.fixtures.inventory.setField(id, "stock", body.Quantity)
	if err != nil {
		writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: err.Error()})
		return
	}
	s.fixtures.recordMovement(id, body.Quantity, body.Reason)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: item})
}

func (s *server) movements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: s.fixtures.movementsFor(chi.URLParam(r, "id"))})
}

// mintToken produces a compact header.payload.signature token. The console
// only inspects shape offline; the signature matters to verify.
func (s *server) mintToken(subject string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(
		`{"sub":%q,"iat":%d,"exp":%d}`, subject, time.Now().Unix(), time.Now().Add(time.Hour).Unix())))
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(header + "." + payload))
	return header + "." + payload + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *server) validToken(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(parts[2]))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func bearerToken(value string) string {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func slicePage(items []map[string]any, page, limit int) []map[string]any {
	start := (page - 1) * limit
	if start >= len(items) {
		return []map[string]any{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
