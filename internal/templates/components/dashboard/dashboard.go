package dashboard

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/futplan/internal/events"
	"github.com/codr1/futplan/internal/templates/components/matches"
	"github.com/codr1/futplan/internal/templates/components/teams"
	"github.com/codr1/futplan/internal/templates/components/venues"
)

type tab struct {
	name        string
	label       string
	title       string
	description string
	newLabel    string
	newURL      string
	formSlotID  string
	listURL     string
	listID      string
	refresh     string
	loading     string
}

var tabs = []tab{
	{
		name:        "teams",
		label:       "Times",
		title:       "Gerenciar Times",
		description: "Cadastre e gerencie os times das suas partidas",
		newLabel:    "Novo Time",
		newURL:      "/api/v1/teams/new",
		formSlotID:  teams.FormSlotID,
		listURL:     "/api/v1/teams",
		listID:      teams.ListID,
		refresh:     events.Teams.RefreshEvent(),
		loading:     "Carregando times...",
	},
	{
		name:        "matches",
		label:       "Partidas",
		title:       "Gerenciar Partidas",
		description: "Cadastre e acompanhe as partidas dos seus times",
		newLabel:    "Nova Partida",
		newURL:      "/api/v1/matches/new",
		formSlotID:  matches.FormSlotID,
		listURL:     "/api/v1/matches",
		listID:      matches.ListID,
		refresh:     events.Matches.RefreshEvent(),
		loading:     "Carregando partidas...",
	},
	{
		name:        "locals",
		label:       "Locais",
		title:       "Gerenciar locais de partida",
		description: "Confira e crie novos locais de partida para seus jogos.",
		newLabel:    "Novo Local",
		newURL:      "/api/v1/venues/new",
		formSlotID:  venues.FormSlotID,
		listURL:     "/api/v1/venues",
		listID:      venues.ListID,
		refresh:     events.Venues.RefreshEvent(),
		loading:     "Carregando locais...",
	},
}

func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildDashboardHTML(data))
		return err
	})
}

func buildDashboardHTML(data PageData) string {
	var builder strings.Builder

	builder.WriteString(`<header class="sticky top-0 z-10 border-b bg-white/80 backdrop-blur"><div class="mx-auto flex max-w-6xl items-center justify-between px-4 py-4">`)
	builder.WriteString(`<h1 class="text-2xl font-bold">FutPlan</h1><div class="flex items-center gap-3">`)
	if data.Email != "" {
		fmt.Fprintf(&builder, `<span class="text-sm text-gray-500">%s</span>`, html.EscapeString(data.Email))
	}
	builder.WriteString(`<button type="button" class="rounded border px-3 py-1 text-sm" hx-post="/auth/logout" hx-swap="none" hx-disabled-elt="this">Sair</button>`)
	builder.WriteString(`</div></div></header>`)

	builder.WriteString(`<main class="mx-auto max-w-6xl space-y-6 px-4 py-8">`)
	if data.DemoMode {
		builder.WriteString(`<div class="rounded border border-amber-200 bg-amber-50 p-3 text-sm text-amber-800">Modo demonstração ativo: listas indisponíveis exibem dados de exemplo.</div>`)
	}

	builder.WriteString(`<div class="mx-auto grid max-w-md grid-cols-3 gap-1 rounded bg-slate-100 p-1" role="tablist">`)
	for i, t := range tabs {
		class := "rounded px-3 py-2"
		selected := "false"
		if i == 0 {
			class += " tab-active"
			selected = "true"
		}
		fmt.Fprintf(&builder, `<button type="button" role="tab" class="%s" data-tab="%s" aria-selected="%s">%s</button>`, class, t.name, selected, t.label)
	}
	builder.WriteString(`</div>`)

	for i, t := range tabs {
		hidden := ""
		if i != 0 {
			hidden = " hidden"
		}
		fmt.Fprintf(&builder,
			`<section class="space-y-6" data-panel="%s"%s>
				<div class="rounded-lg border bg-white p-6 shadow-sm">
					<div class="flex items-center justify-between">
						<div>
							<h2 class="text-xl font-semibold">%s</h2>
							<p class="text-sm text-gray-500">%s</p>
						</div>
						<button type="button" class="rounded px-4 py-2 text-white" style="background:var(--theme-primary)" hx-get="%s" hx-target="#%s" hx-swap="innerHTML" hx-trigger="click[slotIsEmpty('%s')]" data-toggle-slot="%s">+ %s</button>
					</div>
					<div id="%s" class="mt-6 empty:mt-0"></div>
				</div>
				<div id="%s" hx-get="%s" hx-trigger="load, %s from:body" hx-swap="innerHTML">
					<div class="text-sm text-gray-500">%s</div>
				</div>
			</section>`,
			t.name, hidden,
			t.title,
			t.description,
			t.newURL, t.formSlotID, t.formSlotID, t.formSlotID, t.newLabel,
			t.formSlotID,
			t.listID, t.listURL, t.refresh,
			t.loading,
		)
	}
	builder.WriteString(`</main>`)
	return builder.String()
}
