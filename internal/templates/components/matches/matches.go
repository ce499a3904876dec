package matches

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/futplan/internal/models"
)

const (
	ListID     = "matches-list"
	FormSlotID = "match-form-slot"
)

func List(data ListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildMatchesListHTML(data))
		return err
	})
}

func Form(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildMatchFormHTML(data))
		return err
	})
}

func buildMatchesListHTML(data ListData) string {
	if data.Error != "" {
		return fmt.Sprintf(
			`<div class="rounded border border-red-200 bg-red-50 p-6 text-center text-sm text-red-700" role="alert">
				<p>Não foi possível carregar as partidas.</p>
				<p class="mt-1 text-xs">%s</p>
				<button type="button" class="mt-3 rounded border px-3 py-1" hx-get="/api/v1/matches" hx-target="#%s" hx-swap="innerHTML">Tentar novamente</button>
			</div>`,
			html.EscapeString(data.Error),
			ListID,
		)
	}

	var builder strings.Builder
	if data.Demo {
		builder.WriteString(`<div class="mb-4 rounded border border-amber-200 bg-amber-50 p-3 text-sm text-amber-800">Modo demonstração: exibindo partidas de exemplo.</div>`)
	}
	if len(data.Matches) == 0 {
		builder.WriteString(`<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Nenhuma partida agendada.</div>`)
		return builder.String()
	}

	builder.WriteString(`<div class="space-y-4">`)
	for _, match := range data.Matches {
		builder.WriteString(buildMatchCardHTML(match, !data.Demo))
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

// statusBadgeClass maps the known match states to badge styles.
func statusBadgeClass(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.MatchStatusScheduled:
		return "bg-emerald-600 text-white"
	case models.MatchStatusInProgress:
		return "bg-amber-100 text-amber-800"
	case models.MatchStatusFinished:
		return "border border-gray-300 text-gray-700"
	default:
		return "bg-emerald-600 text-white"
	}
}

func buildMatchCardHTML(match models.Match, deletable bool) string {
	badge := ""
	if label := match.StatusLabel(); label != "" {
		badge = fmt.Sprintf(`<span class="rounded-full px-2 py-0.5 text-xs %s">%s</span>`, statusBadgeClass(label), html.EscapeString(label))
	}

	deleteButton := ""
	if deletable {
		deleteButton = fmt.Sprintf(
			`<button type="button" class="rounded border px-3 py-1 text-sm text-red-600" hx-delete="/api/v1/matches/%d" hx-swap="none" hx-disabled-elt="this">Excluir</button>`,
			match.ID,
		)
	}

	return fmt.Sprintf(
		`<div class="rounded border bg-white p-4 shadow-sm" data-match-id="%d">
			<div class="flex items-start justify-between gap-2">
				<div class="text-lg font-semibold text-gray-900">%s vs %s</div>
				%s
			</div>
			<div class="mt-3 grid gap-1 text-sm text-gray-600">
				<div>%s</div>
				<div>%s</div>
			</div>
			<div class="mt-4 flex gap-2">%s</div>
		</div>`,
		match.ID,
		html.EscapeString(match.HomeTeamName),
		html.EscapeString(match.AwayTeamName),
		badge,
		html.EscapeString(match.FormatKickoff()),
		html.EscapeString(match.VenueName),
		deleteButton,
	)
}

func buildMatchFormHTML(data FormData) string {
	if data.LoadError != "" {
		return fmt.Sprintf(
			`<div class="rounded border border-red-200 bg-red-50 p-4 text-sm text-red-700" role="alert">
				<p>%s</p>
				<button type="button" class="mt-3 rounded border px-3 py-1" hx-get="/api/v1/matches/new" hx-target="#%s" hx-swap="innerHTML">Tentar novamente</button>
			</div>`,
			html.EscapeString(data.LoadError),
			FormSlotID,
		)
	}

	teamOptions := buildTeamOptionsHTML(data.Teams)
	var venueOptions strings.Builder
	for _, venue := range data.Venues {
		fmt.Fprintf(&venueOptions, `<option value="%d">%s</option>`, venue.ID, html.EscapeString(venue.Name))
	}

	return fmt.Sprintf(
		`<form class="space-y-4" hx-post="/api/v1/matches" hx-target="#%s" hx-swap="innerHTML" hx-disabled-elt="find fieldset">
			<fieldset class="grid gap-4 md:grid-cols-2">
				<div>
					<label for="id_time_casa" class="block text-sm font-medium">Time da casa</label>
					<select id="id_time_casa" name="id_time_casa" required class="mt-1 w-full rounded border px-3 py-2"><option value="">Selecione o time da casa</option>%s</select>
				</div>
				<div>
					<label for="id_time_visitante" class="block text-sm font-medium">Time visitante</label>
					<select id="id_time_visitante" name="id_time_visitante" required class="mt-1 w-full rounded border px-3 py-2"><option value="">Selecione o time visitante</option>%s</select>
				</div>
				<div>
					<label for="id_local" class="block text-sm font-medium">Local</label>
					<select id="id_local" name="id_local" required class="mt-1 w-full rounded border px-3 py-2"><option value="">Selecione o local</option>%s</select>
				</div>
				<div>
					<label for="data_partida" class="block text-sm font-medium">Data</label>
					<input id="data_partida" name="data_partida" type="date" required class="mt-1 w-full rounded border px-3 py-2">
				</div>
				<div>
					<label for="horario_ini" class="block text-sm font-medium">Início</label>
					<input id="horario_ini" name="horario_ini" type="time" required class="mt-1 w-full rounded border px-3 py-2">
				</div>
				<div>
					<label for="horario_fim" class="block text-sm font-medium">Fim</label>
					<input id="horario_fim" name="horario_fim" type="time" required class="mt-1 w-full rounded border px-3 py-2">
				</div>
				<div class="flex gap-2 md:col-span-2">
					<button type="submit" class="rounded px-4 py-2 text-white" style="background:var(--theme-primary)">Agendar partida</button>
					<button type="button" class="rounded border px-4 py-2" data-close-slot="%s">Cancelar</button>
				</div>
			</fieldset>
		</form>`,
		FormSlotID,
		teamOptions,
		teamOptions,
		venueOptions.String(),
		FormSlotID,
	)
}

func buildTeamOptionsHTML(teams []models.Team) string {
	var builder strings.Builder
	for _, team := range teams {
		fmt.Fprintf(&builder, `<option value="%d">%s</option>`, team.ID, html.EscapeString(team.Name))
	}
	return builder.String()
}
