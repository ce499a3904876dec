// internal/api/teams/handlers.go
package teams

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/codr1/futplan/internal/api/apiutil"
	"github.com/codr1/futplan/internal/api/htmx"
	"github.com/codr1/futplan/internal/cache"
	"github.com/codr1/futplan/internal/events"
	"github.com/codr1/futplan/internal/futapi"
	"github.com/codr1/futplan/internal/models"
	teamstempl "github.com/codr1/futplan/internal/templates/components/teams"
)

var (
	client   *futapi.Client
	store    *cache.Store
	bus      *events.Bus
	demoMode bool

	// deletes collapses repeated deletes of the same team within a session.
	deletes singleflight.Group
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(c *futapi.Client, s *cache.Store, b *events.Bus, demo bool) {
	if c == nil || s == nil || b == nil {
		log.Warn().Msg("teams.InitHandlers called with nil dependency; team handlers will fail")
	}
	client = c
	store = s
	bus = b
	demoMode = demo
}

// HandleTeamsList handles GET /api/v1/teams.
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	api, scope, err := apiutil.SessionClient(r, client)
	if err != nil {
		apiutil.RespondError(w, r, "Erro ao carregar times", err)
		return
	}

	teams, err := cache.Fetch(r.Context(), store, scope, events.Teams, api.ListTeams)
	if !htmx.IsRequest(r) {
		if err != nil {
			apiutil.RespondError(w, r, "", err)
			return
		}
		if writeErr := apiutil.WriteJSON(w, http.StatusOK, teams); writeErr != nil {
			logger.Warn().Err(writeErr).Msg("Failed to write teams JSON")
		}
		return
	}

	data := teamstempl.ListData{Teams: teams}
	if err != nil {
		logger.Warn().Err(err).Bool("demo_mode", demoMode).Msg("Failed to load teams")
		if demoMode {
			data = teamstempl.ListData{Teams: models.DemoTeams(), Demo: true}
		} else {
			data = teamstempl.ListData{Error: apiutil.UserMessage(err)}
		}
	}
	apiutil.RenderHTMLComponent(r.Context(), w, teamstempl.List(data), nil, "Failed to render teams list", "Failed to render teams")
}

// HandleNewTeamForm handles GET /api/v1/teams/new.
func HandleNewTeamForm(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderHTMLComponent(r.Context(), w, teamstempl.Form(), nil, "Failed to render team form", "Failed to render form")
}

// HandleCreateTeam handles POST /api/v1/teams.
func HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	const failureTitle = "Erro ao cadastrar time"
	logger := log.Ctx(r.Context())

	api, scope, err := apiutil.SessionClient(r, client)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	in, err := decodeTeamInput(r)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	if err := api.CreateTeam(r.Context(), in); err != nil {
		logger.Warn().Err(err).Str("team", in.Name).Msg("Failed to create team")
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}
	bus.Publish(events.Changed{Scope: scope, Resource: events.Teams})

	logger.Info().Str("team", in.Name).Msg("Team created")
	apiutil.RespondDone(w, r, http.StatusCreated, in, htmx.Success(
		"Time cadastrado!",
		fmt.Sprintf("%s foi adicionado com sucesso.", in.Name),
		events.Teams.RefreshEvent(),
	))
}

// HandleDeleteTeam handles DELETE /api/v1/teams/{id}.
func HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	const failureTitle = "Erro ao excluir"
	logger := log.Ctx(r.Context())

	id, err := apiutil.IDFromPath(r, "id")
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "ID de time inválido.", Err: err})
		return
	}

	api, scope, err := apiutil.SessionClient(r, client)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	key := fmt.Sprintf("%s/%s/%d", scope, events.Teams, id)
	shared, err := apiutil.Shared(r.Context(), &deletes, key, func(ctx context.Context) error {
		return api.DeleteTeam(ctx, id)
	})
	if err != nil {
		logger.Warn().Err(err).Int64("team_id", id).Msg("Failed to delete team")
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}
	bus.Publish(events.Changed{Scope: scope, Resource: events.Teams})

	logger.Info().Int64("team_id", id).Bool("shared", shared).Msg("Team deleted")
	apiutil.RespondDone(w, r, http.StatusNoContent, nil, htmx.Success(
		"Time excluído",
		"O time foi removido com sucesso.",
		events.Teams.RefreshEvent(),
	))
}

func decodeTeamInput(r *http.Request) (models.TeamInput, error) {
	var in models.TeamInput
	if apiutil.IsJSONBody(r) {
		if err := apiutil.DecodeJSON(r, &in); err != nil {
			return in, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados do time inválidos.", Err: err}
		}
		return in, nil
	}
	if err := r.ParseForm(); err != nil {
		return in, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados do time inválidos.", Err: err}
	}
	in.Name = r.FormValue("nome_time")
	in.ResponsibleName = r.FormValue("nome_responsavel")
	in.UniformColor = r.FormValue("cor_uniforme")
	return in, nil
}
