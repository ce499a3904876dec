package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/futplan/internal/session"
)

func TestHandleDashboardPage(t *testing.T) {
	prev := demoMode
	InitHandlers(true)
	t.Cleanup(func() { demoMode = prev })

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = req.WithContext(session.WithContext(req.Context(), &session.Session{ID: "s1", Token: "tok1", Email: "ana@futplan.test"}))
	rec := httptest.NewRecorder()
	HandleDashboardPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "ana@futplan.test", "Gerenciar Times", "Gerenciar locais de partida", "Modo demonstração ativo"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in dashboard page", want)
		}
	}
}
