// internal/api/venues/handlers.go
package venues

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/futplan/internal/api/apiutil"
	"github.com/codr1/futplan/internal/api/htmx"
	"github.com/codr1/futplan/internal/cache"
	"github.com/codr1/futplan/internal/events"
	"github.com/codr1/futplan/internal/futapi"
	"github.com/codr1/futplan/internal/models"
	venuestempl "github.com/codr1/futplan/internal/templates/components/venues"
)

var (
	client *futapi.Client
	store  *cache.Store
	bus    *events.Bus
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(c *futapi.Client, s *cache.Store, b *events.Bus) {
	if c == nil || s == nil || b == nil {
		log.Warn().Msg("venues.InitHandlers called with nil dependency; venue handlers will fail")
	}
	client = c
	store = s
	bus = b
}

// HandleVenuesList handles GET /api/v1/venues.
func HandleVenuesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	api, scope, err := apiutil.SessionClient(r, client)
	if err != nil {
		apiutil.RespondError(w, r, "Erro ao carregar locais", err)
		return
	}

	venues, err := cache.Fetch(r.Context(), store, scope, events.Venues, api.ListVenues)
	if !htmx.IsRequest(r) {
		if err != nil {
			apiutil.RespondError(w, r, "", err)
			return
		}
		if writeErr := apiutil.WriteJSON(w, http.StatusOK, venues); writeErr != nil {
			logger.Warn().Err(writeErr).Msg("Failed to write venues JSON")
		}
		return
	}

	data := venuestempl.ListData{Venues: venues}
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load venues")
		data = venuestempl.ListData{Error: apiutil.UserMessage(err)}
	}
	apiutil.RenderHTMLComponent(r.Context(), w, venuestempl.List(data), nil, "Failed to render venues list", "Failed to render venues")
}

// HandleNewVenueForm handles GET /api/v1/venues/new.
func HandleNewVenueForm(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderHTMLComponent(r.Context(), w, venuestempl.Form(), nil, "Failed to render venue form", "Failed to render form")
}

// HandleCreateVenue handles POST /api/v1/venues.
func HandleCreateVenue(w http.ResponseWriter, r *http.Request) {
	const failureTitle = "Erro ao cadastrar local"
	logger := log.Ctx(r.Context())

	api, scope, err := apiutil.SessionClient(r, client)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	in, err := decodeVenueInput(r)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	if err := api.CreateVenue(r.Context(), in); err != nil {
		logger.Warn().Err(err).Str("venue", in.Name).Msg("Failed to create venue")
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}
	bus.Publish(events.Changed{Scope: scope, Resource: events.Venues})

	logger.Info().Str("venue", in.Name).Int64("capacity", in.Capacity).Msg("Venue created")
	apiutil.RespondDone(w, r, http.StatusCreated, in, htmx.Success(
		"Local cadastrado!",
		fmt.Sprintf("%s foi adicionado com sucesso.", in.Name),
		events.Venues.RefreshEvent(),
	))
}

// decodeVenueInput accepts a JSON VenueInput or the venue form. Form values
// are coerced by VenueForm; an unchecked checkbox is absent from the form.
func decodeVenueInput(r *http.Request) (models.VenueInput, error) {
	if apiutil.IsJSONBody(r) {
		in := models.VenueInput{AvailableForScheduling: true}
		if err := apiutil.DecodeJSON(r, &in); err != nil {
			return models.VenueInput{}, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados do local inválidos.", Err: err}
		}
		in = in.Normalize()
		return in, in.Validate()
	}
	if err := r.ParseForm(); err != nil {
		return models.VenueInput{}, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados do local inválidos.", Err: err}
	}
	return models.VenueForm{
		Name:                   r.FormValue("nome"),
		Capacity:               r.FormValue("capacidade"),
		AvailableForScheduling: apiutil.FormBool(r, "disponivel_para_agendamento"),
	}.Input()
}
