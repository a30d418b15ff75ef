package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"studiodesk/config"
	"studiodesk/infras/otel/mocks"
	sessionMocks "studiodesk/internal/domains/session/service/mocks"
	"studiodesk/internal/worker"
)

func TestSweeper_SweepOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := sessionMocks.NewMockSession(ctrl)

	sweeper := worker.NewSweeper(sessions, &config.Config{}, mocks.NewOtel())

	sessions.EXPECT().Sweep(gomock.Any()).Return(int64(2), nil)
	sweeper.SweepOnce(context.Background())

	sessions.EXPECT().Sweep(gomock.Any()).Return(int64(0), errors.New("db down"))
	sweeper.SweepOnce(context.Background())
}

func TestSweeper_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := sessionMocks.NewMockSession(ctrl)

	cfg := &config.Config{}
	cfg.Session.SweepIntervalMinutes = 60

	swept := make(chan struct{}, 1)

	sessions.EXPECT().Sweep(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		swept <- struct{}{}

		return 0, nil
	}).MinTimes(1)

	sweeper := worker.NewSweeper(sessions, cfg, mocks.NewOtel())
	sweeper.Start(context.Background())

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate sweep on start")
	}

	stopped := make(chan struct{})

	go func() {
		sweeper.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}

	assert.NotPanics(t, sweeper.Stop)
}
