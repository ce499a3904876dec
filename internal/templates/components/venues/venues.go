package venues

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
	ListID     = "venues-list"
	FormSlotID = "venue-form-slot"
)

func List(data ListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildVenuesListHTML(data))
		return err
	})
}

func Form() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildVenueFormHTML())
		return err
	})
}

func buildVenuesListHTML(data ListData) string {
	if data.Error != "" {
		return fmt.Sprintf(
			`<div class="rounded border border-red-200 bg-red-50 p-6 text-center text-sm text-red-700" role="alert">
				<p>Não foi possível carregar os locais.</p>
				<p class="mt-1 text-xs">%s</p>
				<button type="button" class="mt-3 rounded border px-3 py-1" hx-get="/api/v1/venues" hx-target="#%s" hx-swap="innerHTML">Tentar novamente</button>
			</div>`,
			html.EscapeString(data.Error),
			ListID,
		)
	}
	if len(data.Venues) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Nenhum local cadastrado.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<div class="grid gap-4 md:grid-cols-2 lg:grid-cols-3">`)
	for _, venue := range data.Venues {
		builder.WriteString(buildVenueCardHTML(venue))
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildVenueCardHTML(venue models.Venue) string {
	availability := `<span class="rounded-full bg-emerald-100 px-2 py-0.5 text-xs text-emerald-800">Disponível</span>`
	if !venue.AvailableForScheduling {
		availability = `<span class="rounded-full bg-gray-200 px-2 py-0.5 text-xs text-gray-700">Indisponível</span>`
	}

	return fmt.Sprintf(
		`<div class="rounded border bg-white p-4 shadow-sm" data-venue-id="%d">
			<div class="flex items-start justify-between gap-2">
				<div class="text-lg font-semibold text-gray-900">%s</div>
				%s
			</div>
			<p class="mt-3 text-sm text-gray-600"><span class="font-medium">Capacidade:</span> %d pessoas</p>
		</div>`,
		venue.ID,
		html.EscapeString(venue.Name),
		availability,
		venue.Capacity,
	)
}

func buildVenueFormHTML() string {
	return fmt.Sprintf(
		`<form class="space-y-4" hx-post="/api/v1/venues" hx-target="#%s" hx-swap="innerHTML" hx-disabled-elt="find fieldset">
			<fieldset class="space-y-4">
				<div>
					<label for="nome" class="block text-sm font-medium">Nome do local</label>
					<input id="nome" name="nome" type="text" required placeholder="Ex: Allianz Parque" class="mt-1 w-full rounded border px-3 py-2">
				</div>
				<div>
					<label for="capacidade" class="block text-sm font-medium">Capacidade</label>
					<input id="capacidade" name="capacidade" type="number" min="0" step="1" required class="mt-1 w-full rounded border px-3 py-2">
				</div>
				<label class="flex items-center gap-2 text-sm">
					<input id="disponivel_para_agendamento" name="disponivel_para_agendamento" type="checkbox" checked>
					Disponível para agendamento
				</label>
				<div class="flex gap-2">
					<button type="submit" class="rounded px-4 py-2 text-white" style="background:var(--theme-primary)">Cadastrar local</button>
					<button type="button" class="rounded border px-4 py-2" data-close-slot="%s">Cancelar</button>
				</div>
			</fieldset>
		</form>`,
		FormSlotID,
		FormSlotID,
	)
}
