package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zhouzirui/z-tavern/askwidget/internal/handler/ask"
)

func TestRouterHealthz(t *testing.T) {
	r := NewRouter(ask.EchoAnswerer{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRouterAskRejectsGet(t *testing.T) {
	r := NewRouter(ask.EchoAnswerer{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/ask", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func TestRouterAsk(t *testing.T) {
	r := NewRouter(ask.StaticAnswerer("Hi"), nil)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"response":"Hi"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}
