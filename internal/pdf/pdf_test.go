package pdf

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSpoolFillerWritesJob(t *testing.T) {
	dir := t.TempDir()
	filler, err := NewSpoolFiller(dir)
	if err != nil {
		t.Fatalf("new spool filler: %v", err)
	}

	inputs := map[string]string{"sig1": "data:image/png;base64,abc", "date1": "August 20, 2026"}
	key, err := filler.Fill(context.Background(), "templates/tpl-1.pdf", "req-1", inputs)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if key != "req-1.json" {
		t.Fatalf("artifact key = %q, want req-1.json", key)
	}

	raw, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		t.Fatalf("read job: %v", err)
	}
	var job struct {
		TemplateKey string            `json:"template_key"`
		RequestID   string            `json:"request_id"`
		Inputs      map[string]string `json:"inputs"`
	}
	if err := json.Unmarshal(raw, &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.TemplateKey != "templates/tpl-1.pdf" || job.Inputs["date1"] != "August 20, 2026" {
		t.Fatalf("job = %+v", job)
	}
}

func TestSpoolFillerValidation(t *testing.T) {
	filler, err := NewSpoolFiller(t.TempDir())
	if err != nil {
		t.Fatalf("new spool filler: %v", err)
	}
	if _, err := filler.Fill(context.Background(), "", "req-1", nil); err == nil {
		t.Fatal("expected error for empty template key")
	}
	if _, err := filler.Fill(context.Background(), "tpl.pdf", "", nil); err == nil {
		t.Fatal("expected error for empty request id")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := filler.Fill(ctx, "tpl.pdf", "req-1", nil); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestFillerFuncAdapter(t *testing.T) {
	var gotTemplate string
	fn := FillerFunc(func(_ context.Context, templateKey, _ string, _ map[string]string) (string, error) {
		gotTemplate = templateKey
		return "artifact-1", nil
	})
	key, err := fn.Fill(context.Background(), "tpl.pdf", "req-1", nil)
	if err != nil || key != "artifact-1" || gotTemplate != "tpl.pdf" {
		t.Fatalf("key=%q err=%v template=%q", key, err, gotTemplate)
	}
}
