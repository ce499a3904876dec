package venues

import "github.com/codr1/futplan/internal/models"

type ListData struct {
	Venues []models.Venue
	Error  string
}
