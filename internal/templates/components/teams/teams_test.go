package teams

import (
	"strings"
	"testing"

	"github.com/codr1/futplan/internal/models"
)

func TestTeamsListEscapesAndOffersDelete(t *testing.T) {
	out := buildTeamsListHTML(ListData{Teams: []models.Team{
		{ID: 7, Name: "<Santos>", ResponsibleName: "Fábio", UniformColor: "#ffffff"},
	}})

	if strings.Contains(out, "<Santos>") || !strings.Contains(out, "&lt;Santos&gt;") {
		t.Fatalf("expected escaped team name, got %s", out)
	}
	if !strings.Contains(out, `hx-delete="/api/v1/teams/7"`) || !strings.Contains(out, `hx-disabled-elt="this"`) {
		t.Fatalf("expected guarded delete control, got %s", out)
	}
	if strings.Contains(out, "Editar") {
		t.Fatal("no edit control should be rendered")
	}
}

func TestTeamsListDemoHasNoDelete(t *testing.T) {
	out := buildTeamsListHTML(ListData{Teams: models.DemoTeams(), Demo: true})
	for _, name := range []string{"Palmeiras FC", "Flamengo RJ", "São Paulo FC"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected %q in demo list", name)
		}
	}
	if strings.Contains(out, "hx-delete") {
		t.Fatal("demo rows must not be deletable")
	}
}

func TestTeamsListErrorOffersRetry(t *testing.T) {
	out := buildTeamsListHTML(ListData{Error: "Erro 500"})
	if !strings.Contains(out, "Tentar novamente") || !strings.Contains(out, `hx-get="/api/v1/teams"`) {
		t.Fatalf("expected retry control, got %s", out)
	}
}

func TestTeamsListInvalidColorFallsBack(t *testing.T) {
	out := buildTeamCardHTML(models.Team{ID: 1, Name: "X", UniformColor: "red;position:fixed"}, true)
	if strings.Contains(out, "position:fixed") || !strings.Contains(out, models.DefaultUniformColor) {
		t.Fatalf("expected default swatch color, got %s", out)
	}
}

func TestTeamFormDisablesWhileSubmitting(t *testing.T) {
	out := buildTeamFormHTML()
	if !strings.Contains(out, `hx-disabled-elt="find fieldset"`) || !strings.Contains(out, `value="#10b981"`) {
		t.Fatalf("unexpected form %s", out)
	}
}
