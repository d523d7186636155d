package out_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	companionout "innertone/internal/modules/companion/adapter/out"
	apperrors "innertone/internal/platform/errors"
)

func TestFileRecorderPackagesClip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "clip.ogg")
	payload := bytes.Repeat([]byte{7}, 40*1024+3)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write clip: %v", err)
	}
	stream, err := companionout.NewFileRecorder(path).Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := stream.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	rec, err := stream.Stop()
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !bytes.Equal(rec.Data, payload) || rec.MIMEType != "audio/ogg" || rec.FileName != "recording.ogg" {
		t.Fatalf("unexpected recording: %d bytes %s %s", len(rec.Data), rec.MIMEType, rec.FileName)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
}

func TestFileRecorderMissingDevice(t *testing.T) {
	t.Parallel()
	if _, err := companionout.NewFileRecorder("").Open(context.Background()); !errors.Is(err, apperrors.ErrNoMicrophone) {
		t.Fatalf("expected no microphone, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "nope.webm")
	if _, err := companionout.NewFileRecorder(missing).Open(context.Background()); !errors.Is(err, apperrors.ErrNoMicrophone) {
		t.Fatalf("expected no microphone for a missing file, got %v", err)
	}
}

func TestFileRecorderDefaultsUnknownExtension(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "capture.raw")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stream, err := companionout.NewFileRecorder(path).Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer stream.Close()
	_ = stream.Start()
	rec, err := stream.Stop()
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if rec.FileName != "recording.webm" || rec.MIMEType != "audio/webm" {
		t.Fatalf("unexpected defaults %+v", rec)
	}
}
