package matches

import "github.com/codr1/futplan/internal/models"

type ListData struct {
	Matches []models.Match
	Demo    bool
	Error   string
}

// FormData carries the options of the match form selects. LoadError replaces
// the form when either option list could not be fetched.
type FormData struct {
	Teams     []models.Team
	Venues    []models.Venue
	LoadError string
}
