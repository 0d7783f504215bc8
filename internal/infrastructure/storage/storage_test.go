package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAudioFilename_Extension(t *testing.T) {
	tests := []struct {
		name     string
		original string
		wantExt  string
	}{
		{"lowercase mp3", "standup.mp3", ".mp3"},
		{"case preserved", "clip.MP4", ".MP4"},
		{"last suffix only", "archive.tar.gz", ".gz"},
		{"no extension", "recording", DefaultAudioExtension},
		{"empty name", "", DefaultAudioExtension},
		{"dotfile", ".bashrc", DefaultAudioExtension},
		{"trailing dot", "meeting.", DefaultAudioExtension},
		{"client path ignored", "../../etc/clip.m4a", ".m4a"},
		{"windows path", `C:\Users\me\call.ogg`, ".ogg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAudioFilename(tt.original)
			if !strings.HasSuffix(got, tt.wantExt) {
				t.Fatalf("NewAudioFilename(%q) = %q, want suffix %q", tt.original, got, tt.wantExt)
			}
			if strings.ContainsAny(got, `/\`) {
				t.Fatalf("NewAudioFilename(%q) = %q contains a path separator", tt.original, got)
			}
			id := strings.TrimSuffix(got, tt.wantExt)
			if len(id) != 32 {
				t.Fatalf("id part %q has length %d, want 32", id, len(id))
			}
		})
	}
}

func TestNewAudioFilename_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		name := NewAudioFilename("same.wav")
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate filename %q after %d uploads", name, i)
		}
		seen[name] = struct{}{}
	}
}

func TestLocalStore_SaveAndOpen(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "storage")
	store, err := NewLocalStore(root)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	ctx := context.Background()
	path, n, err := store.Save(ctx, "abc.wav", strings.NewReader("RIFF-audio"), 10, "audio/wav")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if n != 10 {
		t.Errorf("written = %d, want 10", n)
	}
	if path != filepath.Join(root, "abc.wav") {
		t.Errorf("path = %q", path)
	}

	rc, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "RIFF-audio" {
		t.Errorf("content = %q", data)
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 1 {
		t.Errorf("storage dir has %d entries, want only the final file", len(entries))
	}
}

func TestLocalStore_RejectsPathNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	if _, _, err := store.Save(context.Background(), "../escape.wav", strings.NewReader("x"), 1, ""); err == nil {
		t.Fatal("Save() accepted a name containing a path")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestLocalStore_FailedWriteLeavesNothing(t *testing.T) {
	root := t.TempDir()
	store, _ := NewLocalStore(root)

	if _, _, err := store.Save(context.Background(), "broken.wav", failingReader{}, 0, ""); err == nil {
		t.Fatal("Save() succeeded on a failing reader")
	}
	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Fatalf("storage dir has %d leftover entries", len(entries))
	}
}
