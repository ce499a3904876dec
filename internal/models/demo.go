// internal/models/demo.go
package models

import "time"

// DemoTeams is the sample data shown in demo mode when the team list
// cannot be loaded.
func DemoTeams() []Team {
	return []Team{
		{ID: 1, Name: "Palmeiras FC", ResponsibleName: "Abel Ferreira"},
		{ID: 2, Name: "Flamengo RJ", ResponsibleName: "Tite"},
		{ID: 3, Name: "São Paulo FC", ResponsibleName: "Dorival Júnior"},
	}
}

func DemoMatches() []Match {
	kickoff := Timestamp{Time: time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)}
	return []Match{
		{
			ID:           1,
			HomeTeamName: "Palmeiras FC",
			AwayTeamName: "Flamengo RJ",
			StartsAt:     kickoff,
			VenueName:    "Allianz Parque",
			Status:       MatchStatusScheduled,
		},
		{
			ID:           2,
			HomeTeamName: "Palmeiras FC",
			AwayTeamName: "Flamengo RJ",
			StartsAt:     kickoff,
			VenueName:    "Allianz Parque",
			Status:       MatchStatusScheduled,
		},
	}
}
