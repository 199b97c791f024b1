package processor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		file      string
		content   string
		wantErr   bool
		wantName  string
		wantLang  string
		wantVideo string
	}{
		{
			name:      "prompt with defaults",
			file:      "intro.yaml",
			content:   "video: clips/intro.mp4\nprompt: a story\n",
			wantName:  "intro",
			wantLang:  "en",
			wantVideo: filepath.Join(dir, "clips/intro.mp4"),
		},
		{
			name:      "explicit fields",
			file:      "x.yml",
			content:   "name: outro\nvideo: /abs/outro.mov\nlanguage: FR\nscript: Bonjour.\n",
			wantName:  "outro",
			wantLang:  "fr",
			wantVideo: "/abs/outro.mov",
		},
		{name: "missing video", file: "a.yaml", content: "prompt: x\n", wantErr: true},
		{name: "missing script and prompt", file: "b.yaml", content: "video: v.mp4\n", wantErr: true},
		{name: "bad language", file: "c.yaml", content: "video: v.mp4\nprompt: x\nlanguage: klingon\n", wantErr: true},
		{name: "name with separator", file: "d.yaml", content: "name: ../escape\nvideo: v.mp4\nprompt: x\n", wantErr: true},
		{name: "malformed yaml", file: "e.yaml", content: "video: [\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			m, err := LoadManifest(path, "en")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidManifest) {
					t.Errorf("LoadManifest() error = %v, want ErrInvalidManifest", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadManifest() error = %v", err)
			}
			if m.Name != tt.wantName || m.Language != tt.wantLang || m.Video != tt.wantVideo {
				t.Errorf("manifest = %+v", m)
			}
		})
	}
}
