package teams

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
	ListID     = "teams-list"
	FormSlotID = "team-form-slot"
)

func List(data ListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildTeamsListHTML(data))
		return err
	})
}

func Form() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildTeamFormHTML())
		return err
	})
}

func buildTeamsListHTML(data ListData) string {
	if data.Error != "" {
		return fmt.Sprintf(
			`<div class="rounded border border-red-200 bg-red-50 p-6 text-center text-sm text-red-700" role="alert">
				<p>Não foi possível carregar os times.</p>
				<p class="mt-1 text-xs">%s</p>
				<button type="button" class="mt-3 rounded border px-3 py-1" hx-get="/api/v1/teams" hx-target="#%s" hx-swap="innerHTML">Tentar novamente</button>
			</div>`,
			html.EscapeString(data.Error),
			ListID,
		)
	}

	var builder strings.Builder
	if data.Demo {
		builder.WriteString(`<div class="mb-4 rounded border border-amber-200 bg-amber-50 p-3 text-sm text-amber-800">Modo demonstração: exibindo times de exemplo.</div>`)
	}
	if len(data.Teams) == 0 {
		builder.WriteString(`<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Nenhum time cadastrado.</div>`)
		return builder.String()
	}

	builder.WriteString(`<div class="grid gap-4 md:grid-cols-2 lg:grid-cols-3">`)
	for _, team := range data.Teams {
		builder.WriteString(buildTeamCardHTML(team, !data.Demo))
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildTeamCardHTML(team models.Team, deletable bool) string {
	color := team.UniformColor
	if !models.IsHexColor(color) {
		color = models.DefaultUniformColor
	}

	deleteButton := ""
	if deletable {
		deleteButton = fmt.Sprintf(
			`<button type="button" class="rounded border px-3 py-1 text-sm text-red-600" hx-delete="/api/v1/teams/%d" hx-swap="none" hx-disabled-elt="this" aria-label="Excluir %s">Excluir</button>`,
			team.ID,
			html.EscapeString(team.Name),
		)
	}

	return fmt.Sprintf(
		`<div class="rounded border bg-white p-4 shadow-sm" data-team-id="%d">
			<div class="flex items-center gap-2">
				<span class="inline-block h-4 w-4 rounded-full border" style="background-color:%s" title="%s"></span>
				<div class="text-lg font-semibold text-gray-900">%s</div>
			</div>
			<p class="mt-3 text-sm text-gray-600"><span class="font-medium">Técnico:</span> %s</p>
			<div class="mt-4 flex gap-2">%s</div>
		</div>`,
		team.ID,
		color,
		color,
		html.EscapeString(team.Name),
		html.EscapeString(team.ResponsibleName),
		deleteButton,
	)
}

func buildTeamFormHTML() string {
	return fmt.Sprintf(
		`<form class="space-y-4" hx-post="/api/v1/teams" hx-target="#%s" hx-swap="innerHTML" hx-disabled-elt="find fieldset">
			<fieldset class="space-y-4">
				<div>
					<label for="nome_time" class="block text-sm font-medium">Nome do time</label>
					<input id="nome_time" name="nome_time" type="text" required placeholder="Ex: Palmeiras FC" class="mt-1 w-full rounded border px-3 py-2">
				</div>
				<div>
					<label for="nome_responsavel" class="block text-sm font-medium">Técnico / responsável</label>
					<input id="nome_responsavel" name="nome_responsavel" type="text" placeholder="%s" class="mt-1 w-full rounded border px-3 py-2">
				</div>
				<div>
					<label for="cor_uniforme" class="block text-sm font-medium">Cor do uniforme</label>
					<input id="cor_uniforme" name="cor_uniforme" type="color" value="%s" class="mt-1 h-10 w-20 rounded border">
				</div>
				<div class="flex gap-2">
					<button type="submit" class="rounded px-4 py-2 text-white" style="background:var(--theme-primary)">Cadastrar time</button>
					<button type="button" class="rounded border px-4 py-2" data-close-slot="%s">Cancelar</button>
				</div>
			</fieldset>
		</form>`,
		FormSlotID,
		html.EscapeString(models.DefaultResponsibleName),
		models.DefaultUniformColor,
		FormSlotID,
	)
}
