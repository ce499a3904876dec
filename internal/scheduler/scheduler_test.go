package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type fakePruner struct {
	removed int
	err     error
	calls   int
}

func (f *fakePruner) Prune(ctx context.Context) (int, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("expected bounded context")
	}
	return f.removed, f.err
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(clockwork.NewFakeClock())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = svc.Stop() })
	return svc
}

func TestAddJobValidation(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		jobName  string
		cronExpr string
		task     func()
		want     error
	}{
		{name: "missing name", jobName: " ", cronExpr: "* * * * *", task: func() {}, want: ErrEmptyJobName},
		{name: "missing cron", jobName: "job", cronExpr: "", task: func() {}, want: ErrEmptyCronExpr},
		{name: "missing task", jobName: "job", cronExpr: "* * * * *", want: ErrNilTask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddJob(tt.jobName, tt.cronExpr, tt.task); !errors.Is(err, tt.want) {
				t.Fatalf("AddJob() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := svc.AddJob("bad", "not a cron", func() {}); err == nil {
		t.Fatal("expected invalid cron expression to be rejected")
	}
}

func TestNilServiceIsNotInitialized(t *testing.T) {
	var svc *Service
	if _, err := svc.AddJob("job", "* * * * *", func() {}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := svc.Stop(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestRegisterMaintenanceJobs(t *testing.T) {
	svc := newTestService(t)

	err := RegisterMaintenanceJobs(svc, MaintenanceJobs{
		Sessions:    &fakePruner{},
		SessionCron: "*/15 * * * *",
		Sweepers:    map[string]Sweeper{"cache": SweepFunc(func() int { return 0 })},
		SweepCron:   "*/5 * * * *",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	names := map[string]bool{}
	for _, job := range svc.Jobs() {
		names[job.Name()] = true
	}
	if !names[SessionPruneJob] || !names[CacheSweepJob] {
		t.Fatalf("expected both maintenance jobs, got %v", names)
	}
}

func TestRegisterMaintenanceJobsRequiresPruner(t *testing.T) {
	if err := RegisterMaintenanceJobs(newTestService(t), MaintenanceJobs{}); err == nil {
		t.Fatal("expected error without a session pruner")
	}
}

func TestPruneSessions(t *testing.T) {
	pruner := &fakePruner{removed: 3}
	if got := pruneSessions(pruner, zerolog.Nop()); got != 3 {
		t.Fatalf("pruneSessions() = %d, want 3", got)
	}

	failing := &fakePruner{removed: 3, err: errors.New("disk full")}
	if got := pruneSessions(failing, zerolog.Nop()); got != 0 {
		t.Fatalf("pruneSessions() on error = %d, want 0", got)
	}
}

func TestSweepAll(t *testing.T) {
	got := sweepAll(map[string]Sweeper{
		"cache":   SweepFunc(func() int { return 2 }),
		"limiter": SweepFunc(func() int { return 1 }),
	}, zerolog.Nop())
	if got != 3 {
		t.Fatalf("sweepAll() = %d, want 3", got)
	}
}
