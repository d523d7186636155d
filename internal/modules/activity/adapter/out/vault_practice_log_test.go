package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	activityout "innertone/internal/modules/activity/adapter/out"
	"innertone/internal/modules/activity/domain"
)

func TestVaultPracticeLogRoundTrip(t *testing.T) {
	t.Parallel()
	root := filepath.Join(t.TempDir(), "practice")
	log := activityout.NewVaultPracticeLog(root)
	ctx := context.Background()

	if got, err := log.Recent(ctx, 5); err != nil || len(got) != 0 {
		t.Fatalf("empty log should list nothing, got %v %v", got, err)
	}

	first := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	path, err := log.Save(ctx, domain.Practice{ID: "p1", Kind: domain.Meditation, StartedAt: first, EndedAt: first.Add(5 * time.Minute), Minutes: 5, Completed: true})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(path, filepath.Join(root, "2026", "03", "04")) {
		t.Fatalf("unexpected note path %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if !strings.Contains(string(raw), "kind: meditation") || !strings.Contains(string(raw), "Length: 5 minutes") {
		t.Fatalf("note missing fields:\n%s", raw)
	}

	second := first.Add(time.Hour)
	if _, err := log.Save(ctx, domain.Practice{ID: "p2", Kind: domain.Breathing, StartedAt: second, EndedAt: second.Add(28 * time.Second), Cycles: 2, Completed: true}); err != nil {
		t.Fatalf("save breathing: %v", err)
	}
	got, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p2" || got[1].ID != "p1" {
		t.Fatalf("expected newest first, got %+v", got)
	}
	if got[0].Cycles != 2 || got[0].Duration() != 28*time.Second {
		t.Fatalf("breathing practice not restored: %+v", got[0])
	}
	if limited, _ := log.Recent(ctx, 1); len(limited) != 1 {
		t.Fatalf("limit not applied")
	}
}
