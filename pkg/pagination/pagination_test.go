package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func ctxWithQuery(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(ctxWithQuery(t, ""))
	if p.Limit != 0 || p.Offset != 0 {
		t.Errorf("expected zero params, got %+v", p)
	}
	if p.Paged() {
		t.Error("expected Paged() false without a limit")
	}
}

func TestFromContext_Explicit(t *testing.T) {
	p := FromContext(ctxWithQuery(t, "limit=25&offset=50"))
	if p.Limit != 25 || p.Offset != 50 {
		t.Errorf("unexpected params: %+v", p)
	}
	if !p.Paged() {
		t.Error("expected Paged() true")
	}
}

func TestFromContext_Caps(t *testing.T) {
	p := FromContext(ctxWithQuery(t, "limit=99999&offset=-5"))
	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected negative offset clamped to 0, got %d", p.Offset)
	}
}
