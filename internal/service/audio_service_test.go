package service

import (
	"context"
	"io"
	"testing"
)

// fakeStorage 只有固定的文件集合存在
type fakeStorage struct {
	existing map[string]bool
}

func (f *fakeStorage) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return f.GetURL(filename), nil
}

func (f *fakeStorage) Exists(filename string) bool {
	return f.existing[filename]
}

func (f *fakeStorage) GetURL(filename string) string {
	return "/static/" + filename
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		ref      string
		want     string
	}{
		{
			name: "empty ref means no audio",
			ref:  "",
			want: "",
		},
		{
			name: "external ref passes through",
			ref:  "https://cdn.example.com/q1.mp3",
			want: "https://cdn.example.com/q1.mp3",
		},
		{
			name:     "literal file exists",
			existing: []string{"q1.mp3"},
			ref:      "audio/q1.mp3",
			want:     "/static/q1.mp3",
		},
		{
			name:     "country variant fallback",
			existing: []string{"q1_country.mp3"},
			ref:      "audio/q1.mp3",
			want:     "/static/q1_country.mp3",
		},
		{
			name:     "answer variant fallback",
			existing: []string{"q1_answer.mp3"},
			ref:      "audio/q1.mp3",
			want:     "/static/q1_answer.mp3",
		},
		{
			name:     "literal wins over variants",
			existing: []string{"q1.mp3", "q1_country.mp3"},
			ref:      "audio/q1.mp3",
			want:     "/static/q1.mp3",
		},
		{
			name: "missing file still yields best-effort url",
			ref:  "audio/q99.mp3",
			want: "/static/q99.mp3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &fakeStorage{existing: make(map[string]bool)}
			for _, f := range tt.existing {
				storage.existing[f] = true
			}
			svc := NewAudioService(storage)

			got := svc.Resolve(tt.ref)

			if got != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}
