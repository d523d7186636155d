package bootstrap_test

import (
	"context"
	"testing"

	"innertone/internal/bootstrap"
	"innertone/internal/platform/config"
)

func TestNewWiresMutedApp(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Mute = true
	app, err := bootstrap.New(cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ctx := context.Background()

	status, err := app.AmbientCLI.Play(ctx, "ocean")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !status.Playing || status.Active != "ocean" || status.ActiveNodes == 0 {
		t.Fatalf("unexpected status %+v", status)
	}
	if _, err := app.JournalCLI.Add(ctx, "quiet morning"); err != nil {
		t.Fatalf("journal add: %v", err)
	}
	list, err := app.JournalCLI.List(ctx)
	if err != nil || list.Total != 1 {
		t.Fatalf("journal list: %+v %v", list, err)
	}
	if view := app.ActivityCLI.Breathe(ctx); !view.Active {
		t.Fatalf("breathing should be active")
	}
	if err := app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
