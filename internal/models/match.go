// internal/models/match.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	MatchStatusScheduled  = "agendada"
	MatchStatusInProgress = "em andamento"
	MatchStatusFinished   = "finalizada"

	displayTimeZone = "America/Sao_Paulo"
)

// DisplayLocation is the zone match times are rendered in. Naive upstream
// timestamps are interpreted in it as well.
var DisplayLocation = loadDisplayLocation()

func loadDisplayLocation() *time.Location {
	loc, err := time.LoadLocation(displayTimeZone)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	http.TimeFormat,
	time.RFC1123Z,
	time.RFC1123,
}

// Timestamp decodes the several date formats the upstream API is known to emit.
type Timestamp struct {
	time.Time
}

func ParseTimestamp(raw string) (Timestamp, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		var (
			parsed time.Time
			err    error
		)
		switch layout {
		case "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02":
			parsed, err = time.ParseInLocation(layout, raw, DisplayLocation)
		default:
			parsed, err = time.Parse(layout, raw)
		}
		if err == nil {
			return Timestamp{Time: parsed}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Match is a scheduled match as listed by GET /partidas. The name fields are
// joined by the upstream.
type Match struct {
	ID              int64     `json:"id_partida"`
	HomeTeamID      int64     `json:"id_time_casa,omitempty"`
	AwayTeamID      int64     `json:"id_time_visitante,omitempty"`
	VenueID         int64     `json:"id_local,omitempty"`
	StartsAt        Timestamp `json:"dthr_ini"`
	EndsAt          Timestamp `json:"dthr_fim"`
	Status          string    `json:"status,omitempty"`
	VenueName       string    `json:"nome_local"`
	ResponsibleName string    `json:"nome_responsavel"`
	HomeTeamName    string    `json:"time_casa"`
	AwayTeamName    string    `json:"time_visitante"`
}

// StatusLabel prefers the explicit status and falls back to the responsible
// name column, which older upstream builds used to carry the status.
func (m Match) StatusLabel() string {
	if status := strings.TrimSpace(m.Status); status != "" {
		return status
	}
	return strings.TrimSpace(m.ResponsibleName)
}

// FormatKickoff renders the start as "15/11/2025 às 20:00" in DisplayLocation.
func (m Match) FormatKickoff() string {
	if m.StartsAt.IsZero() {
		return "Data a definir"
	}
	local := m.StartsAt.In(DisplayLocation)
	return local.Format("02/01/2006") + " às " + local.Format("15:04")
}

// MatchInput is the body of POST /partidas.
type MatchInput struct {
	HomeTeamID int64  `json:"id_time_casa"`
	AwayTeamID int64  `json:"id_time_visitante"`
	VenueID    int64  `json:"id_local"`
	StartsAt   string `json:"dthr_ini"`
	EndsAt     string `json:"dthr_fim"`
}

// MatchForm holds the raw select and date/time values of the match form.
type MatchForm struct {
	HomeTeamID string `json:"id_time_casa"`
	AwayTeamID string `json:"id_time_visitante"`
	VenueID    string `json:"id_local"`
	Date       string `json:"data_partida"`
	StartTime  string `json:"horario_ini"`
	EndTime    string `json:"horario_fim"`
}

var ErrSameTeam = ValidationError{Field: "id_time_visitante", Message: "O time da casa e o visitante não podem ser o mesmo."}

// Input validates the form and builds the request body. It never touches the
// network, so a rejected form costs no request.
func (f MatchForm) Input() (MatchInput, error) {
	f = MatchForm{
		HomeTeamID: strings.TrimSpace(f.HomeTeamID),
		AwayTeamID: strings.TrimSpace(f.AwayTeamID),
		VenueID:    strings.TrimSpace(f.VenueID),
		Date:       strings.TrimSpace(f.Date),
		StartTime:  strings.TrimSpace(f.StartTime),
		EndTime:    strings.TrimSpace(f.EndTime),
	}

	checks := []error{
		required("id_time_casa", f.HomeTeamID, "Selecione o time da casa."),
		required("id_time_visitante", f.AwayTeamID, "Selecione o time visitante."),
		required("id_local", f.VenueID, "Selecione o local da partida."),
		required("data_partida", f.Date, "Informe a data da partida."),
		required("horario_ini", f.StartTime, "Informe o horário de início."),
		required("horario_fim", f.EndTime, "Informe o horário de fim."),
	}
	for _, err := range checks {
		if err != nil {
			return MatchInput{}, err
		}
	}

	homeID, err := parseID("id_time_casa", f.HomeTeamID)
	if err != nil {
		return MatchInput{}, err
	}
	awayID, err := parseID("id_time_visitante", f.AwayTeamID)
	if err != nil {
		return MatchInput{}, err
	}
	if homeID == awayID {
		return MatchInput{}, ErrSameTeam
	}
	venueID, err := parseID("id_local", f.VenueID)
	if err != nil {
		return MatchInput{}, err
	}

	return MatchInput{
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		VenueID:    venueID,
		StartsAt:   CombineDateTime(f.Date, f.StartTime),
		EndsAt:     CombineDateTime(f.Date, f.EndTime),
	}, nil
}

// CombineDateTime joins an HTML date ("2025-11-15") and time ("20:00") into
// the ISO-8601 local timestamp the upstream expects ("2025-11-15T20:00").
func CombineDateTime(date, clock string) string {
	return strings.TrimSpace(date) + "T" + strings.TrimSpace(clock)
}

func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ValidationError{Field: field, Message: "Seleção inválida."}
	}
	return id, nil
}
