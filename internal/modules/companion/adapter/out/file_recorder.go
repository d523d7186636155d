package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"innertone/internal/modules/companion/domain"
	companionout "innertone/internal/modules/companion/port/out"
	apperrors "innertone/internal/platform/errors"
)

const chunkSize = 16 * 1024

var audioTypes = map[string]string{
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
}

// FileRecorder stands in for a microphone by replaying a pre-recorded clip.
// Without a configured file there is no capture device.
type FileRecorder struct {
	path string
}

func NewFileRecorder(path string) companionout.Recorder {
	return &FileRecorder{path: path}
}

func (r *FileRecorder) Open(context.Context) (companionout.Stream, error) {
	if strings.TrimSpace(r.path) == "" {
		return nil, apperrors.ErrNoMicrophone
	}
	f, err := os.Open(r.path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMicrophoneDenied, err)
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNoMicrophone, err)
	default:
		return nil, fmt.Errorf("open recording: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(r.path))
	mimeType, ok := audioTypes[ext]
	name := "recording" + ext
	if !ok {
		mimeType = domain.DefaultRecordingType
		name = domain.DefaultRecordingName
	}
	return &fileStream{file: f, mimeType: mimeType, name: name}, nil
}

type fileStream struct {
	mu       sync.Mutex
	file     *os.File
	mimeType string
	name     string
	started  bool
	closed   bool
}

func (s *fileStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("recorder already released")
	}
	s.started = true
	return nil
}

// Stop drains the clip in fixed-size chunks and joins them into one blob.
func (s *fileStream) Stop() (domain.Recording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.closed {
		return domain.Recording{}, fmt.Errorf("recorder is not running")
	}
	s.started = false
	var chunks [][]byte
	buf := make([]byte, chunkSize)
	for {
		n, err := s.file.Read(buf)
		if n > 0 {
			chunks = append(chunks, append([]byte(nil), buf[:n]...))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Recording{}, fmt.Errorf("read recording: %w", err)
		}
	}
	return domain.Recording{Data: bytes.Join(chunks, nil), MIMEType: s.mimeType, FileName: s.name}, nil
}

func (s *fileStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}
