// internal/api/matches/handlers.go
package matches

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/codr1/futplan/internal/api/apiutil"
	"github.com/codr1/futplan/internal/api/htmx"
	"github.com/codr1/futplan/internal/cache"
	"github.com/codr1/futplan/internal/events"
	"github.com/codr1/futplan/internal/futapi"
	"github.com/codr1/futplan/internal/models"
	matchestempl "github.com/codr1/futplan/internal/templates/components/matches"
)

// formLoadError replaces the match form when its options cannot be fetched.
const formLoadError = "Falha ao buscar dados iniciais."

var (
	client   *futapi.Client
	store    *cache.Store
	bus      *events.Bus
	demoMode bool

	deletes singleflight.Group
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(c *futapi.Client, s *cache.Store, b *events.Bus, demo bool) {
	if c == nil || s == nil || b == nil {
		log.Warn().Msg("matches.InitHandlers called with nil dependency; match handlers will fail")
	}
	client = c
	store = s
	bus = b
	demoMode = demo
}

// HandleMatchesList handles GET /api/v1/matches.
func HandleMatchesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	api, scope, err := apiutil.SessionClient(r, client)
	if err != nil {
		apiutil.RespondError(w, r, "Erro ao carregar partidas", err)
		return
	}

	matches, err := cache.Fetch(r.Context(), store, scope, events.Matches, api.ListMatches)
	if !htmx.IsRequest(r) {
		if err != nil {
			apiutil.RespondError(w, r, "", err)
			return
		}
		if writeErr := apiutil.WriteJSON(w, http.StatusOK, matches); writeErr != nil {
			logger.Warn().Err(writeErr).Msg("Failed to write matches JSON")
		}
		return
	}

	data := matchestempl.ListData{Matches: matches}
	if err != nil {
		logger.Warn().Err(err).Bool("demo_mode", demoMode).Msg("Failed to load matches")
		if demoMode {
			data = matchestempl.ListData{Matches: models.DemoMatches(), Demo: true}
		} else {
			data = matchestempl.ListData{Error: apiutil.UserMessage(err)}
		}
	}
	apiutil.RenderHTMLComponent(r.Context(), w, matchestempl.List(data), nil, "Failed to render matches list", "Failed to render matches")
}

// HandleNewMatchForm handles GET /api/v1/matches/new. Teams and venues are
// fetched concurrently and straight from the upstream so the selects never
// offer options from a stale list.
func HandleNewMatchForm(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	api, _, err := apiutil.SessionClient(r, client)
	if err != nil {
		apiutil.RespondError(w, r, "Erro ao carregar formulário", err)
		return
	}

	var data matchestempl.FormData
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		teams, err := api.ListTeams(ctx)
		if err != nil {
			return fmt.Errorf("load teams: %w", err)
		}
		data.Teams = teams
		return nil
	})
	g.Go(func() error {
		venues, err := api.ListVenues(ctx)
		if err != nil {
			return fmt.Errorf("load venues: %w", err)
		}
		data.Venues = venues
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Warn().Err(err).Msg("Failed to load match form options")
		data = matchestempl.FormData{LoadError: formLoadError}
	}

	apiutil.RenderHTMLComponent(r.Context(), w, matchestempl.Form(data), nil, "Failed to render match form", "Failed to render form")
}

// HandleCreateMatch handles POST /api/v1/matches.
func HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	const failureTitle = "Erro ao agendar partida"
	logger := log.Ctx(r.Context())

	api, scope, err := apiutil.SessionClient(r, client)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	form, err := decodeMatchForm(r)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}
	in, err := form.Input()
	if err != nil {
		title := failureTitle
		if errors.Is(err, models.ErrSameTeam) {
			title = "Erro de Validação"
		}
		apiutil.RespondError(w, r, title, err)
		return
	}

	if err := api.CreateMatch(r.Context(), in); err != nil {
		logger.Warn().Err(err).Int64("home_team_id", in.HomeTeamID).Int64("away_team_id", in.AwayTeamID).Msg("Failed to create match")
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}
	bus.Publish(events.Changed{Scope: scope, Resource: events.Matches})

	logger.Info().
		Int64("home_team_id", in.HomeTeamID).
		Int64("away_team_id", in.AwayTeamID).
		Int64("venue_id", in.VenueID).
		Str("starts_at", in.StartsAt).
		Msg("Match created")
	apiutil.RespondDone(w, r, http.StatusCreated, in, htmx.Success(
		"Partida cadastrada!",
		"A partida foi agendada com sucesso.",
		events.Matches.RefreshEvent(),
	))
}

// HandleDeleteMatch handles DELETE /api/v1/matches/{id}.
func HandleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	const failureTitle = "Erro ao excluir"
	logger := log.Ctx(r.Context())

	id, err := apiutil.IDFromPath(r, "id")
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "ID de partida inválido.", Err: err})
		return
	}

	api, scope, err := apiutil.SessionClient(r, client)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	key := fmt.Sprintf("%s/%s/%d", scope, events.Matches, id)
	shared, err := apiutil.Shared(r.Context(), &deletes, key, func(ctx context.Context) error {
		return api.DeleteMatch(ctx, id)
	})
	if err != nil {
		logger.Warn().Err(err).Int64("match_id", id).Msg("Failed to delete match")
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}
	bus.Publish(events.Changed{Scope: scope, Resource: events.Matches})

	logger.Info().Int64("match_id", id).Bool("shared", shared).Msg("Match deleted")
	apiutil.RespondDone(w, r, http.StatusNoContent, nil, htmx.Success(
		"Partida excluída",
		"A partida foi removida com sucesso.",
		events.Matches.RefreshEvent(),
	))
}

func decodeMatchForm(r *http.Request) (models.MatchForm, error) {
	var form models.MatchForm
	if apiutil.IsJSONBody(r) {
		if err := apiutil.DecodeJSON(r, &form); err != nil {
			return form, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados da partida inválidos.", Err: err}
		}
		return form, nil
	}
	if err := r.ParseForm(); err != nil {
		return form, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados da partida inválidos.", Err: err}
	}
	return models.MatchForm{
		HomeTeamID: r.FormValue("id_time_casa"),
		AwayTeamID: r.FormValue("id_time_visitante"),
		VenueID:    r.FormValue("id_local"),
		Date:       r.FormValue("data_partida"),
		StartTime:  r.FormValue("horario_ini"),
		EndTime:    r.FormValue("horario_fim"),
	}, nil
}
