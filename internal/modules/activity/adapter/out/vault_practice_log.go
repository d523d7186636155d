package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"innertone/internal/modules/activity/domain"
	activityout "innertone/internal/modules/activity/port/out"
	"innertone/internal/platform/markdown"
	"innertone/internal/platform/slug"
)

// VaultPracticeLog writes one markdown note per finished practice under
// <root>/YYYY/MM/DD.
type VaultPracticeLog struct {
	root string
}

func NewVaultPracticeLog(root string) activityout.PracticeLog {
	return &VaultPracticeLog{root: root}
}

type practiceMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	Kind          string `yaml:"kind"`
	StartedAt     string `yaml:"started_at"`
	EndedAt       string `yaml:"ended_at"`
	DurationSec   int    `yaml:"duration_seconds"`
	Cycles        int    `yaml:"cycles,omitempty"`
	Minutes       int    `yaml:"minutes,omitempty"`
	Completed     bool   `yaml:"completed"`
}

func (s *VaultPracticeLog) Save(_ context.Context, p domain.Practice) (string, error) {
	date := p.StartedAt
	dir := filepath.Join(s.root, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create practice dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(string(p.Kind)))
	path := filepath.Join(dir, name)

	meta := practiceMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            p.ID,
		Kind:          string(p.Kind),
		StartedAt:     p.StartedAt.Format(time.RFC3339),
		EndedAt:       p.EndedAt.Format(time.RFC3339),
		DurationSec:   int(p.Duration().Seconds()),
		Cycles:        p.Cycles,
		Minutes:       p.Minutes,
		Completed:     p.Completed,
	}
	rendered, err := markdown.Render(meta, practiceBody(p))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write practice note: %w", err)
	}
	return path, nil
}

func practiceBody(p domain.Practice) string {
	var detail string
	switch p.Kind {
	case domain.Breathing:
		detail = fmt.Sprintf("- Cycles: %d", p.Cycles)
	case domain.Meditation:
		detail = fmt.Sprintf("- Length: %d minutes", p.Minutes)
	case domain.Relaxation:
		detail = fmt.Sprintf("- Steps: %d", domain.StepCount())
	}
	title := strings.ToUpper(string(p.Kind[:1])) + string(p.Kind[1:])
	return fmt.Sprintf("# %s practice\n\n- Started: %s\n- Duration: %s\n%s\n", title, p.StartedAt.Format("Jan 2, 2006 15:04"), p.Duration().Round(time.Second), detail)
}

// Recent returns up to limit practices, newest first. Notes that fail to
// parse are skipped.
func (s *VaultPracticeLog) Recent(_ context.Context, limit int) ([]domain.Practice, error) {
	var out []domain.Practice
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read practice note: %w", err)
		}
		var meta practiceMeta
		if _, err := markdown.Split(string(raw), &meta); err != nil || meta.Kind == "" {
			return nil
		}
		started, err := time.Parse(time.RFC3339, meta.StartedAt)
		if err != nil {
			return nil
		}
		ended, err := time.Parse(time.RFC3339, meta.EndedAt)
		if err != nil {
			ended = started
		}
		out = append(out, domain.Practice{
			ID:        meta.ID,
			Kind:      domain.Kind(meta.Kind),
			StartedAt: started,
			EndedAt:   ended,
			Cycles:    meta.Cycles,
			Minutes:   meta.Minutes,
			Completed: meta.Completed,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan practice log: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
