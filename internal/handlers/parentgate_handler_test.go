package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"screenclash/internal/parentgate"
	"screenclash/internal/security"
)

func newGateTestServer(t *testing.T) (*parentgate.Gate, http.Handler) {
	t.Helper()

	gate := parentgate.New("", []byte("test-key"), 5*time.Minute)
	alert := parentgate.NewAlert(1 * time.Hour)
	handler := NewParentGateHandler(gate, alert)
	mw := NewMiddleware(nil, gate, security.NewRateLimiter(100, time.Minute))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/parentgate/challenge", handler.Challenge)
	mux.HandleFunc("POST /api/parentgate/verify", mw.RateLimit(handler.Verify))
	mux.HandleFunc("POST /api/alert/{profile}", handler.RaiseAlert)
	mux.HandleFunc("GET /api/alert/{profile}", handler.AlertStatus)
	mux.HandleFunc("DELETE /api/alert/{profile}", handler.AcknowledgeAlert)
	mux.HandleFunc("GET /api/protected", mw.RequireUnlock(func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	return gate, mux
}

func TestParentGateChallengeFlow(t *testing.T) {
	_, mux := newGateTestServer(t)

	// Request a challenge
	req := httptest.NewRequest("POST", "/api/parentgate/challenge", strings.NewReader(`{"client_id":"tablet-1"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("challenge status = %d, want 200", rec.Code)
	}

	var challenge parentgate.Challenge
	if err := json.Unmarshal(rec.Body.Bytes(), &challenge); err != nil {
		t.Fatalf("decode challenge: %v", err)
	}

	// A wrong answer is rejected
	body := fmt.Sprintf(`{"client_id":"tablet-1","answer":%d}`, challenge.Num1*challenge.Num2+1)
	req = httptest.NewRequest("POST", "/api/parentgate/verify", strings.NewReader(body))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong answer status = %d, want 403", rec.Code)
	}

	// The same problem still accepts the right answer
	body = fmt.Sprintf(`{"client_id":"tablet-1","answer":%d}`, challenge.Num1*challenge.Num2)
	req = httptest.NewRequest("POST", "/api/parentgate/verify", strings.NewReader(body))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("correct answer status = %d, want 200", rec.Code)
	}

	var verify struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &verify); err != nil {
		t.Fatalf("decode verify response: %v", err)
	}
	if verify.Token == "" {
		t.Fatal("expected an unlock token")
	}

	// The token opens the protected route
	req = httptest.NewRequest("GET", "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+verify.Token)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("protected route with token = %d, want 200", rec.Code)
	}
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	_, mux := newGateTestServer(t)

	req := httptest.NewRequest("GET", "/api/protected", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("protected route without token = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("protected route with bad token = %d, want 401", rec.Code)
	}
}

func TestAlertRoutes(t *testing.T) {
	_, mux := newGateTestServer(t)

	status := func() bool {
		req := httptest.NewRequest("GET", "/api/alert/emma", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		var resp struct {
			Active bool `json:"active"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode alert status: %v", err)
		}
		return resp.Active
	}

	if status() {
		t.Fatal("alert should start inactive")
	}

	req := httptest.NewRequest("POST", "/api/alert/emma", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
	if !status() {
		t.Fatal("alert should be active after raise")
	}

	req = httptest.NewRequest("DELETE", "/api/alert/emma", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
	if status() {
		t.Error("alert should be inactive after acknowledge")
	}
}

func TestVerifyRequiresClientID(t *testing.T) {
	_, mux := newGateTestServer(t)

	req := httptest.NewRequest("POST", "/api/parentgate/verify", strings.NewReader(`{"answer":42}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("verify without client_id = %d, want 400", rec.Code)
	}
}
