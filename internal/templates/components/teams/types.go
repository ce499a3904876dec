package teams

import "github.com/codr1/futplan/internal/models"

// ListData is what the team list fragment renders. Error is set when the
// load failed and no demo data replaced it.
type ListData struct {
	Teams []models.Team
	Demo  bool
	Error string
}
