package main

import (
	"context"
	"testing"

	"go-chi-calculator/internal/config"
)

func TestInitTelemetryWithoutExport(t *testing.T) {
	cfg := config.Default()
	cfg.ExportEnabled = false

	shutdown, err := initTelemetry(context.Background(), cfg)
	if err != nil {
		t.Fatalf("initTelemetry: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
