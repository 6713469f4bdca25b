package seeder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/philly/postboard/internal/platform/logger"
	"github.com/philly/postboard/internal/platform/seeder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSeeder struct {
	name string
	err  error
	runs *[]string
}

func (s recordingSeeder) Name() string { return s.name }

func (s recordingSeeder) Seed(context.Context) error {
	*s.runs = append(*s.runs, s.name)
	return s.err
}

func TestOrchestrator_RunsInOrder(t *testing.T) {
	var runs []string
	o := seeder.NewOrchestrator(logger.Nop{},
		recordingSeeder{name: "users", runs: &runs},
		recordingSeeder{name: "posts", runs: &runs},
	)

	require.NoError(t, o.RunAll(context.Background()))
	assert.Equal(t, []string{"users", "posts"}, runs)
}

func TestOrchestrator_StopsAtFirstFailure(t *testing.T) {
	var runs []string
	boom := errors.New("boom")
	o := seeder.NewOrchestrator(logger.Nop{},
		recordingSeeder{name: "users", err: boom, runs: &runs},
		recordingSeeder{name: "posts", runs: &runs},
	)

	err := o.RunAll(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "seeder users failed: boom")
	assert.Equal(t, []string{"users"}, runs)
}
