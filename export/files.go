// ABOUTME: Writes export documents to disk
// ABOUTME: Files are named by date and replaced atomically

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harperreed/opslog/models"
	"golang.org/x/sync/errgroup"
)

// FileName returns opslog-export-YYYY-MM-DD.<format>.
func FileName(format Format, now time.Time) string {
	return fmt.Sprintf("opslog-export-%s.%s", now.UTC().Format(models.DateLayout), format)
}

// WriteFile writes data into dir under the export file name through a temp file and rename.
func WriteFile(dir string, format Format, data []byte, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".opslog-export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close export: %w", err)
	}

	path := filepath.Join(dir, FileName(format, now))
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}
	return path, nil
}

// WriteAll renders both formats and writes them concurrently. Nothing is written
// when either document cannot be rendered.
func WriteAll(ctx context.Context, dir string, state *models.UserState, insights []string, now time.Time) ([]string, error) {
	jsonData, err := ToJSON(state, insights, now)
	if err != nil {
		return nil, err
	}
	csvData, err := ToCSV(state)
	if err != nil {
		return nil, err
	}

	docs := []struct {
		format Format
		data   []byte
	}{
		{FormatJSON, jsonData},
		{FormatCSV, csvData},
	}
	paths := make([]string, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := WriteFile(dir, doc.format, doc.data, now)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
