// Package pdf defines the document rendering contract. Rendering itself is
// delegated to an external service; this package only shapes the boundary.
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Filler produces a populated document artifact from a template and the
// resolved field inputs. Implementations must not mutate inputs.
type Filler interface {
	Fill(ctx context.Context, templateKey, requestID string, inputs map[string]string) (artifactKey string, err error)
}

// FillerFunc adapts a function to the Filler interface.
type FillerFunc func(ctx context.Context, templateKey, requestID string, inputs map[string]string) (string, error)

// Fill calls f.
func (f FillerFunc) Fill(ctx context.Context, templateKey, requestID string, inputs map[string]string) (string, error) {
	return f(ctx, templateKey, requestID, inputs)
}

// SpoolFiller writes fill jobs to a local spool directory as JSON for an
// external renderer to pick up. The artifact key it returns is the spool
// file path relative to the spool root.
type SpoolFiller struct {
	dir string
}

// NewSpoolFiller creates a filler spooling jobs under dir.
func NewSpoolFiller(dir string) (*SpoolFiller, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("spool directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create spool directory: %w", err)
	}
	return &SpoolFiller{dir: dir}, nil
}

type spoolJob struct {
	TemplateKey string            `json:"template_key"`
	RequestID   string            `json:"request_id"`
	Inputs      map[string]string `json:"inputs"`
}

// Fill writes one render job and returns its artifact key.
func (f *SpoolFiller) Fill(ctx context.Context, templateKey, requestID string, inputs map[string]string) (string, error) {
	if f == nil {
		return "", fmt.Errorf("filler is not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	templateKey = strings.TrimSpace(templateKey)
	if templateKey == "" {
		return "", fmt.Errorf("template key is required")
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return "", fmt.Errorf("request id is required")
	}

	encoded, err := json.MarshalIndent(spoolJob{
		TemplateKey: templateKey,
		RequestID:   requestID,
		Inputs:      inputs,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode fill job: %w", err)
	}

	name := requestID + ".json"
	if err := os.WriteFile(filepath.Join(f.dir, name), encoded, 0o644); err != nil {
		return "", fmt.Errorf("write fill job: %w", err)
	}
	return name, nil
}
