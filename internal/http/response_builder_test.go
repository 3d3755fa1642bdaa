package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONResponseBuilderDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	NewJSONResponse().Body(map[string]string{"hello": "world"}).Write(rec)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["hello"] != "world" {
		t.Fatalf("body = %v", body)
	}
}

func TestJSONResponseBuilderStatusAndHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	NewJSONResponse().
		Status(http.StatusAccepted).
		Header("Retry-After", "60").
		Write(rec)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatal("custom header missing")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("empty payload should produce empty body, got %q", rec.Body)
	}
}

func TestErrorResponseShape(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFoundError("card not found").Write(rec)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "card not found" {
		t.Fatalf("body = %v", body)
	}
}
