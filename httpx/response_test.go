package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONError(rr, http.StatusBadRequest, "validation_failed", map[string]string{"price": "required"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "validation_failed" {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestAlert(t *testing.T) {
	rr := httptest.NewRecorder()
	Alert(rr, "panier", "created", "82318")
	if got := rr.Header().Get(AlertHeader); got != "coopcycleApp.panier.created" {
		t.Fatalf("alert header %q", got)
	}
	if got := rr.Header().Get(AlertParamsHeader); got != "82318" {
		t.Fatalf("params header %q", got)
	}
}

func TestPaginate(t *testing.T) {
	u, _ := url.Parse("/api/paniers?page=1&size=10&sort=id,desc")
	rr := httptest.NewRecorder()
	Paginate(rr, u, 1, 10, 35)
	if got := rr.Header().Get(TotalCountHeader); got != "35" {
		t.Fatalf("total %q", got)
	}
	link := rr.Header().Get("Link")
	for _, want := range []string{`rel="next"`, `rel="prev"`, `rel="last"`, `rel="first"`, "page=3", "sort=id%2Cdesc"} {
		if !strings.Contains(link, want) {
			t.Errorf("Link %q missing %s", link, want)
		}
	}

	rr = httptest.NewRecorder()
	Paginate(rr, u, 0, 10, 0)
	link = rr.Header().Get("Link")
	if strings.Contains(link, `rel="next"`) || strings.Contains(link, `rel="prev"`) {
		t.Errorf("single empty page should only link first/last: %q", link)
	}
}
