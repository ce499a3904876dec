// internal/api/dashboard/handlers.go
package dashboard

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/futplan/internal/api/apiutil"
	"github.com/codr1/futplan/internal/session"
	dashboardtempl "github.com/codr1/futplan/internal/templates/components/dashboard"
	"github.com/codr1/futplan/internal/templates/layouts"
)

var demoMode bool

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(demo bool) {
	demoMode = demo
}

// HandleDashboardPage renders the dashboard shell for GET /dashboard. The
// lists load themselves once the page is in the browser.
func HandleDashboardPage(w http.ResponseWriter, r *http.Request) {
	data := dashboardtempl.PageData{DemoMode: demoMode}
	if sess, ok := session.FromContext(r.Context()); ok {
		data.Email = sess.Email
	} else {
		log.Ctx(r.Context()).Warn().Msg("Dashboard rendered without session")
	}

	page := layouts.Base("FutPlan - Dashboard", dashboardtempl.Page(data), nil)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render dashboard page", "Failed to render page")
}
