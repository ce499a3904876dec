package futapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/codr1/futplan/internal/models"
)

const (
	pathLogin   = "/login"
	pathUsers   = "/usuarios"
	pathTeams   = "/times"
	pathVenues  = "/locais"
	pathMatches = "/partidas"
)

// ErrMissingToken is returned when /login succeeds without an access token.
var ErrMissingToken = errors.New("Token não retornado")

var (
	createPolicy = errorPolicy{keys: []string{"error", "message"}}
	listPolicy   = errorPolicy{keys: []string{"message", "error"}}
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for the bearer token. Any non-2xx answer is
// reported as "Erro no login" whatever the body says.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, pathLogin, creds, &resp, errorPolicy{fallback: "Erro no login"})
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(resp.AccessToken)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

func (c *Client) Signup(ctx context.Context, user models.User) error {
	return c.do(ctx, http.MethodPost, pathUsers, user, nil, errorPolicy{
		keys:     []string{"error", "message"},
		fallback: "Erro no cadastro",
	})
}

func (c *Client) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := c.do(ctx, http.MethodGet, pathTeams, nil, &teams, listPolicy); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) CreateTeam(ctx context.Context, in models.TeamInput) error {
	return c.do(ctx, http.MethodPost, pathTeams, in, nil, createPolicy)
}

func (c *Client) DeleteTeam(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", pathTeams, id), nil, nil, errorPolicy{
		keys:     []string{"message", "error"},
		fallback: "Falha ao excluir time",
	})
}

func (c *Client) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if err := c.do(ctx, http.MethodGet, pathVenues, nil, &venues, listPolicy); err != nil {
		return nil, err
	}
	return venues, nil
}

func (c *Client) CreateVenue(ctx context.Context, in models.VenueInput) error {
	return c.do(ctx, http.MethodPost, pathVenues, in, nil, createPolicy)
}

func (c *Client) ListMatches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := c.do(ctx, http.MethodGet, pathMatches, nil, &matches, listPolicy); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *Client) CreateMatch(ctx context.Context, in models.MatchInput) error {
	return c.do(ctx, http.MethodPost, pathMatches, in, nil, createPolicy)
}

func (c *Client) DeleteMatch(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", pathMatches, id), nil, nil, errorPolicy{
		keys:     []string{"message", "error"},
		fallback: "Falha ao excluir partida",
	})
}
