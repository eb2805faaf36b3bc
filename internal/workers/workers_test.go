// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/logger"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount atomic.Int32
}

func (m *mockWorker) Run() {
	m.runCount.Add(1)
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	ws, err := New(logger.Nop())
	require.NoError(t, err)

	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}
	require.NoError(t, ws.Every("one", time.Hour, w1))
	require.NoError(t, ws.Every("two", time.Hour, w2))
	require.NoError(t, ws.Every("three", time.Hour, w3))

	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.Equal(t, int32(1), w.runCount.Load(), "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws, err := New(logger.Nop())
	require.NoError(t, err)

	// Should not panic on empty workers list
	ws.Run()
}

func TestWorkers_Every_DisabledInterval(t *testing.T) {
	ws, err := New(logger.Nop())
	require.NoError(t, err)

	w := &mockWorker{}
	require.NoError(t, ws.Every("off", 0, w))
	ws.Run()

	assert.Zero(t, w.runCount.Load())
}

func TestWorkers_Start_Ticks(t *testing.T) {
	ws, err := New(logger.Nop())
	require.NoError(t, err)

	var ticks atomic.Int32
	require.NoError(t, ws.Every("tick", 20*time.Millisecond, WorkerFunc(func() { ticks.Add(1) })))

	ws.Start()
	require.Eventually(t, func() bool { return ticks.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, ws.Stop())
}
