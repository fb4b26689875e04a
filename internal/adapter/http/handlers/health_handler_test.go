package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(true, false, true)
	r := gin.New()
	r.GET("/healthz", h.Healthz)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("unexpected status: %v", body["status"])
	}
	mp, _ := body["mercadoPago"].(map[string]any)
	if mp["configured"] != true || mp["devMode"] != false {
		t.Fatalf("unexpected mercadoPago block: %+v", mp)
	}
	sink, _ := body["printSink"].(map[string]any)
	if sink["configured"] != true {
		t.Fatalf("unexpected printSink block: %+v", sink)
	}
}
