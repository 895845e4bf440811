package worker

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdnishan/reportcron/internal/runner"
	"github.com/mdnishan/reportcron/internal/types"
	"github.com/mdnishan/reportcron/pkg/logger"
)

// fakeRunner records the jobs it runs and replays canned exit codes.
type fakeRunner struct {
	mu        sync.Mutex
	ran       []string
	exitCodes map[string]int
}

func (f *fakeRunner) Run(ctx context.Context, job types.JobConfig) (*runner.Result, error) {
	f.mu.Lock()
	f.ran = append(f.ran, job.Name)
	f.mu.Unlock()

	code := f.exitCodes[job.Name]
	res := &runner.Result{Job: job.Name, ExitCode: code}
	if code != 0 {
		return res, &runner.ScriptExecutionError{Job: job.Name, ExitCode: code}
	}
	return res, nil
}

func newTestWorker(jobs []types.JobConfig, r runner.Runner) *Worker {
	return New(&types.Config{Jobs: jobs}, logger.NewNullLogger(), r)
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"30 3 * * *", false},
		{"@daily", false},
		{"@every 1h", false},
		{"* * * * * *", true}, // 6 fields, seconds not enabled
		{"not a schedule", true},
		{"61 3 * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := ValidateSchedule(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterJobs_RejectsInvalidExpression(t *testing.T) {
	w := newTestWorker([]types.JobConfig{
		{Name: "bad", CronExpr: "not a schedule", Script: "x.py"},
	}, &fakeRunner{})

	require.Error(t, w.RegisterJobs())
}

func TestRegisterJobs_SkipsUnscheduledJobs(t *testing.T) {
	w := newTestWorker([]types.JobConfig{
		{Name: "scheduled", CronExpr: "30 3 * * *", Script: "a.py"},
		{Name: "manual-only", Script: "b.py"},
	}, &fakeRunner{})

	require.NoError(t, w.RegisterJobs())
	assert.Len(t, w.entries, 1)
	assert.Contains(t, w.entries, "scheduled")
}

func TestTrigger_RoutesThroughRunner(t *testing.T) {
	fr := &fakeRunner{}
	w := newTestWorker([]types.JobConfig{
		{Name: "morning-report", Script: "MorningReport.py"},
	}, fr)

	res, err := w.Trigger(context.Background(), "morning-report")

	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, []string{"morning-report"}, fr.ran)
}

func TestTrigger_UnknownJob(t *testing.T) {
	w := newTestWorker(nil, &fakeRunner{})

	_, err := w.Trigger(context.Background(), "nope")
	require.Error(t, err)
}

func TestTrigger_FailureKeepsExitCode(t *testing.T) {
	fr := &fakeRunner{exitCodes: map[string]int{"flaky": 3}}
	w := newTestWorker([]types.JobConfig{
		{Name: "flaky", Script: "flaky.py"},
	}, fr)

	res, err := w.Trigger(context.Background(), "flaky")

	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.True(t, res.Failed())
}

func TestTriggerAll_RunsEveryJobInOrder(t *testing.T) {
	fr := &fakeRunner{exitCodes: map[string]int{"b": 1}}
	w := newTestWorker([]types.JobConfig{
		{Name: "a", Script: "a.py"},
		{Name: "b", Script: "b.py"},
		{Name: "c", Script: "c.py"},
	}, fr)

	results := w.TriggerAll(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, []string{"a", "b", "c"}, fr.ran)
	assert.Equal(t, 1, results[1].ExitCode)
	assert.Equal(t, 0, results[2].ExitCode, "a failed job must not stop the rest")
}

func TestScheduledAndManualShareExecutePath(t *testing.T) {
	// The cron closure and Trigger both call execute; assert they hit
	// the same runner with the same job config.
	fr := &fakeRunner{}
	job := types.JobConfig{Name: "shared", CronExpr: "@daily", Script: "s.py"}
	w := newTestWorker([]types.JobConfig{job}, fr)

	w.execute(context.Background(), job) // what the cron entry invokes
	_, err := w.Trigger(context.Background(), "shared")

	require.NoError(t, err)
	assert.Equal(t, []string{"shared", "shared"}, fr.ran)
}

func TestWorker_StartStop(t *testing.T) {
	w := newTestWorker([]types.JobConfig{
		{Name: "daily", CronExpr: "30 3 * * *", Script: "d.py"},
	}, &fakeRunner{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	require.NoError(t, w.Start(ctx, &wg))

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop(), "Stop must be idempotent")
	wg.Wait()
}
