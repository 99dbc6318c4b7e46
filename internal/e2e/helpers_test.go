package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"audiod/internal/engine"
	"audiod/internal/httpapi"
	"audiod/internal/registry"
	"audiod/internal/telemetry"
	"audiod/pkg/types"
)

// newStack starts an engine on the null backend behind a test HTTP server.
// The frame interval is long so that only API commands move state.
func newStack(t *testing.T) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg, err := registry.New([]types.Trigger{
		{Name: "hum", Loop: true},
		{Name: "beep", DurationMS: 100},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	metrics := prometheus.NewRegistry()
	pub := telemetry.NewPublisher(metrics)
	eng, err := engine.New(engine.Config{
		Backend:       "null",
		FrameInterval: time.Hour,
		AudibleRange:  50,
		Objects: []types.GameObject{
			{Name: "player", Position: types.Vec3{X: 1}},
			{Name: "beacon", Position: types.Vec3{X: 80}},
		},
		Triggers:  reg,
		Publisher: pub,
	})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	srv := httptest.NewServer(httpapi.NewMux(eng))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("engine shutdown: %v", err)
		}
	})
	return srv, metrics
}

func doJSON(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}
