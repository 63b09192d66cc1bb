package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lajournal/lajournal/internal/database"
	"github.com/lajournal/lajournal/internal/services/auth"
	"github.com/lajournal/lajournal/internal/services/entry"
	"github.com/lajournal/lajournal/internal/services/label"
	"github.com/lajournal/lajournal/internal/services/stats"
	"github.com/lajournal/lajournal/internal/testutil"
)

// setupServer builds the full stack over an in-memory database
func setupServer(t *testing.T) *Server {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	return NewServer(
		entry.NewService(repo),
		label.NewService(repo),
		stats.NewService(repo),
		auth.NewService(repo, auth.Config{
			Secret:     "test-secret",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		}),
		Options{},
	)
}

// doJSON sends a JSON request and decodes the JSON response into out.
func doJSON(t *testing.T, s *Server, method, path, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("Failed to decode response from %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

// registerAndLogin creates an account over the API and returns an access token
func registerAndLogin(t *testing.T, s *Server, username string) string {
	t.Helper()

	code := doJSON(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "long enough",
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("Expected 201 from register, got %d", code)
	}

	var pair tokenPairJSON
	code = doJSON(t, s, http.MethodPost, "/api/token/pair", "", map[string]string{
		"username": username,
		"password": "long enough",
	}, &pair)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 from login, got %d", code)
	}
	return pair.Access
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	s := setupServer(t)

	var body map[string]string
	code := doJSON(t, s, http.MethodGet, "/healthz", "", nil, &body)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	s := setupServer(t)

	code := doJSON(t, s, http.MethodGet, "/api/entries", "", nil, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", code)
	}

	code = doJSON(t, s, http.MethodGet, "/api/entries", "garbage-token", nil, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with bad token, got %d", code)
	}
}

func TestEntryLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	s := setupServer(t)
	token := registerAndLogin(t, s, "journaler")

	var created entryJSON
	code := doJSON(t, s, http.MethodPost, "/api/entries", token, map[string]any{
		"title": "Day one",
		"date":  "2024-06-01",
		"paragraphs": []map[string]any{
			{"order": 1, "content": "It begins."},
			{"order": 2, "content": "It continues."},
		},
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", code)
	}
	if created.Title != "Day one" || created.Date != "2024-06-01" {
		t.Errorf("Unexpected entry %+v", created)
	}
	if len(created.Paragraphs) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", len(created.Paragraphs))
	}

	// Partial update keeps what the body omits
	var updated entryJSON
	code = doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/entries/%d", created.ID), token, map[string]any{
		"title": "Day one, revised",
	}, &updated)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if updated.Title != "Day one, revised" {
		t.Errorf("Expected updated title, got %q", updated.Title)
	}
	if len(updated.Paragraphs) != 2 {
		t.Errorf("Expected paragraphs untouched, got %d", len(updated.Paragraphs))
	}

	var list []entryJSON
	code = doJSON(t, s, http.MethodGet, "/api/entries", token, nil, &list)
	if code != http.StatusOK || len(list) != 1 {
		t.Fatalf("Expected a single listed entry, got code %d len %d", code, len(list))
	}

	code = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/entries/%d", created.ID), token, nil, nil)
	if code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", code)
	}
	code = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/entries/%d", created.ID), token, nil, nil)
	if code != http.StatusNotFound {
		t.Errorf("Expected 404 after deletion, got %d", code)
	}
}

func TestLabelAssignOverHTTP(t *testing.T) {
	t.Parallel()

	s := setupServer(t)
	token := registerAndLogin(t, s, "tagger")

	var created entryJSON
	doJSON(t, s, http.MethodPost, "/api/entries", token, map[string]any{
		"paragraphs": []map[string]any{
			{"order": 1, "content": "tag me"},
		},
	}, &created)

	var lbl labelJSON
	code := doJSON(t, s, http.MethodPost, "/api/labels", token, map[string]string{
		"name": "themes",
	}, &lbl)
	if code != http.StatusCreated {
		t.Fatalf("Expected 201 creating label, got %d", code)
	}

	var tagged entryJSON
	code = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/entries/%d/assign_label", created.ID), token, map[string]any{
		"label_id":         lbl.ID,
		"paragraph_orders": []int{1},
	}, &tagged)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 assigning label, got %d", code)
	}
	if len(tagged.Paragraphs[0].Labels) != 1 || tagged.Paragraphs[0].Labels[0].Name != "themes" {
		t.Errorf("Expected 'themes' on paragraph, got %+v", tagged.Paragraphs[0].Labels)
	}

	// A missing order rejects the whole request
	code = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/entries/%d/assign_label", created.ID), token, map[string]any{
		"label_id":         lbl.ID,
		"paragraph_orders": []int{1, 42},
	}, nil)
	if code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing order, got %d", code)
	}
}

func TestUserIsolationOverHTTP(t *testing.T) {
	t.Parallel()

	s := setupServer(t)
	alice := registerAndLogin(t, s, "alice")
	mallory := registerAndLogin(t, s, "mallory")

	var created entryJSON
	doJSON(t, s, http.MethodPost, "/api/entries", alice, map[string]any{
		"title": "Private",
	}, &created)

	code := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/entries/%d", created.ID), mallory, nil, nil)
	if code != http.StatusNotFound {
		t.Errorf("Expected 404 for another user's entry, got %d", code)
	}
}

func TestValidationErrorsOverHTTP(t *testing.T) {
	t.Parallel()

	s := setupServer(t)
	token := registerAndLogin(t, s, "strict")

	code := doJSON(t, s, http.MethodPost, "/api/entries", token, map[string]any{
		"rating": 9,
	}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range rating, got %d", code)
	}

	code = doJSON(t, s, http.MethodPost, "/api/entries", token, map[string]any{
		"date": "June 1st",
	}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed date, got %d", code)
	}

	code = doJSON(t, s, http.MethodPost, "/api/labels", token, map[string]string{"name": ""}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty label name, got %d", code)
	}
}

func TestStatsAndSearchOverHTTP(t *testing.T) {
	t.Parallel()

	s := setupServer(t)
	token := registerAndLogin(t, s, "analyst")

	doJSON(t, s, http.MethodPost, "/api/entries", token, map[string]any{
		"title": "Sea day",
		"date":  "2024-06-01",
		"paragraphs": []map[string]any{
			{"order": 1, "content": "Swam in the ocean"},
		},
	}, nil)

	var st statsJSON
	code := doJSON(t, s, http.MethodGet, "/api/entries/stats", token, nil, &st)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 from stats, got %d", code)
	}
	if st.TotalEntries != 1 {
		t.Errorf("Expected 1 entry in stats, got %d", st.TotalEntries)
	}

	var results []searchResultJSON
	code = doJSON(t, s, http.MethodGet, "/api/entries/search?query=ocean", token, nil, &results)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 from search, got %d", code)
	}
	if len(results) != 1 || len(results[0].Paragraphs) != 1 {
		t.Fatalf("Expected one matching entry with one paragraph, got %+v", results)
	}

	code = doJSON(t, s, http.MethodGet, "/api/entries/search", token, nil, nil)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty query, got %d", code)
	}

	var tl timelineJSON
	code = doJSON(t, s, http.MethodGet, "/api/entries/timeline", token, nil, &tl)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 from timeline, got %d", code)
	}
	if len(tl.Month) != 1 || tl.Month[0].Period != "2024-06-01" {
		t.Errorf("Expected one June bucket, got %+v", tl.Month)
	}
}

func TestRefreshAndLogoutOverHTTP(t *testing.T) {
	t.Parallel()

	s := setupServer(t)

	doJSON(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "sessions",
		"password": "long enough",
	}, nil)

	var pair tokenPairJSON
	doJSON(t, s, http.MethodPost, "/api/token/pair", "", map[string]string{
		"username": "sessions",
		"password": "long enough",
	}, &pair)

	var rotated tokenPairJSON
	code := doJSON(t, s, http.MethodPost, "/api/token/refresh-tokens", "", map[string]string{
		"refresh": pair.Refresh,
	}, &rotated)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 from refresh, got %d", code)
	}

	code = doJSON(t, s, http.MethodPost, "/api/token/invalidate", "", map[string]string{
		"refresh": rotated.Refresh,
	}, nil)
	if code != http.StatusNoContent {
		t.Fatalf("Expected 204 from invalidate, got %d", code)
	}

	code = doJSON(t, s, http.MethodPost, "/api/token/refresh-tokens", "", map[string]string{
		"refresh": rotated.Refresh,
	}, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("Expected 401 reusing invalidated token, got %d", code)
	}
}
