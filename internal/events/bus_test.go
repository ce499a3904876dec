package events

import "testing"

func TestPublishReachesOnlyMatchingSubscribers(t *testing.T) {
	bus := NewBus()

	var teamEvents, matchEvents []Changed
	bus.Subscribe(Teams, func(evt Changed) { teamEvents = append(teamEvents, evt) })
	bus.Subscribe(Matches, func(evt Changed) { matchEvents = append(matchEvents, evt) })

	bus.Publish(Changed{Scope: "s1", Resource: Teams})

	if len(teamEvents) != 1 || teamEvents[0].Scope != "s1" {
		t.Fatalf("expected one team event for s1, got %+v", teamEvents)
	}
	if len(matchEvents) != 0 {
		t.Fatalf("expected no match events, got %+v", matchEvents)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(Venues, func(Changed) { calls++ })
	other := 0
	bus.Subscribe(Venues, func(Changed) { other++ })

	bus.Publish(Changed{Resource: Venues})
	unsubscribe()
	unsubscribe()
	bus.Publish(Changed{Resource: Venues})

	if calls != 1 {
		t.Fatalf("expected removed handler to run once, got %d", calls)
	}
	if other != 2 {
		t.Fatalf("expected remaining handler to run twice, got %d", other)
	}
}

func TestRefreshEvent(t *testing.T) {
	tests := map[Resource]string{
		Teams:         "refreshTeamsList",
		Venues:        "refreshVenuesList",
		Matches:       "refreshMatchesList",
		Resource("x"): "",
	}
	for resource, want := range tests {
		if got := resource.RefreshEvent(); got != want {
			t.Errorf("%q.RefreshEvent() = %q, want %q", resource, got, want)
		}
	}
}
