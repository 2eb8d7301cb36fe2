package manager

import (
	"context"
	"fmt"

	"swapman/internal/upstream"
	"swapman/pkg/types"
)

// responseWindow bounds the rolling sample window for the average.
const responseWindow = 100

// Status probes the swap service and reports connection state, the active
// model count and the rolling average test response time. A failed probe is
// a "disconnected" status, never an error.
func (m *Manager) Status(ctx context.Context) types.SystemStatus {
	status := "disconnected"
	count := 0
	if active, available := m.upstream.ListActiveModels(ctx); available {
		status = "connected"
		count = len(active)
		upstreamProbesTotal.WithLabelValues("connected").Inc()
	} else {
		upstreamProbesTotal.WithLabelValues("disconnected").Inc()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := types.SystemStatus{
		ConnectionStatus: status,
		ActiveModels:     count,
		TotalRequests:    m.totalRequests,
		MemoryUsage:      "N/A",
		GPUUsage:         "N/A",
	}
	if len(m.responseTimes) > 0 {
		sum := 0
		for _, ms := range m.responseTimes {
			sum += ms
		}
		avg := sum / len(m.responseTimes)
		out.AvgResponseTime = &avg
	}
	return out
}

// RunTest issues one test completion against the first active model and
// records the elapsed time into the rolling window. Unlike the read paths,
// a swap service failure here surfaces as an error.
func (m *Manager) RunTest(ctx context.Context) (types.TestResponse, error) {
	out, err := m.upstream.RunTest(ctx)
	if err != nil {
		if upstream.IsNoActiveModels(err) {
			return types.TestResponse{}, ErrNotFound("No active models available")
		}
		return types.TestResponse{}, ErrUpstream("Model test failed: " + err.Error())
	}
	m.RecordSample(out.ElapsedMillis)
	m.activity.Append(fmt.Sprintf("Model test successful - %s: %s (%dms)", out.ModelID, out.Response, out.ElapsedMillis))
	return types.TestResponse{
		Model:        out.ModelID,
		Response:     out.Response,
		ResponseTime: out.ElapsedMillis,
		Status:       "success",
	}, nil
}

// RecordSample adds one response-time sample, trimming the window to the most
// recent responseWindow entries, and bumps the request counter.
func (m *Manager) RecordSample(elapsedMillis int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests++
	m.responseTimes = append(m.responseTimes, elapsedMillis)
	if len(m.responseTimes) > responseWindow {
		m.responseTimes = m.responseTimes[len(m.responseTimes)-responseWindow:]
	}
}
