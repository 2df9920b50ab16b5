package handler

import (
	"context"
	"errors"
	"testing"
)

func TestPingCheck(t *testing.T) {
	up := pingCheck(context.Background(), func(context.Context) error { return nil })
	if up["status"] != "up" {
		t.Errorf("status = %v, want up", up["status"])
	}
	if _, ok := up["latency_ms"]; !ok {
		t.Error("latency_ms should be reported")
	}

	down := pingCheck(context.Background(), func(context.Context) error {
		return errors.New("connection refused")
	})
	if down["status"] != "down" {
		t.Errorf("status = %v, want down", down["status"])
	}
}

func TestHotCacheCheck_DisabledWhenUnconfigured(t *testing.T) {
	// A nil client is how the cache service reports a disabled hot layer;
	// the probe must call it disabled, not down.
	check := hotCacheCheck(context.Background(), nil)
	if check["status"] != "disabled" {
		t.Errorf("status = %v, want disabled", check["status"])
	}
}
