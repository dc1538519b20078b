// Package charts renders the monthly saving potential series as an
// interactive HTML line chart or a static PNG.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mode-allocation-simulator/internal/domain"
)

// ErrEmptySeries means there is no dated shipment to plot.
var ErrEmptySeries = errors.New("saving series has no periods")

const chartTitle = "Saving potencial por mês"

// WriteFile renders s to path, choosing the format from the extension
// (.html/.htm or .png). Nothing is written when rendering fails.
func WriteFile(path string, s domain.SavingSeries) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".html" && ext != ".htm" && ext != ".png" {
		return fmt.Errorf("write chart %q: unsupported extension %q (want .html or .png)", path, ext)
	}
	if len(s.Periods) == 0 {
		return fmt.Errorf("write chart %q: %w", path, ErrEmptySeries)
	}

	var buf bytes.Buffer
	render := RenderHTML
	if ext == ".png" {
		render = RenderPNG
	}
	if err := render(&buf, s); err != nil {
		return fmt.Errorf("write chart %q: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
