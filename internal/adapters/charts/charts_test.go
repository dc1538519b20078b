package charts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mode-allocation-simulator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries() domain.SavingSeries {
	return domain.SavingSeries{
		Periods: []string{"2024-01", "2024-02", "2024-03"},
		Modes:   []domain.Mode{domain.ModeFleet, domain.ModeAggregated},
		Values: map[domain.Mode][]float64{
			domain.ModeFleet:      {0, 80, 12.5},
			domain.ModeAggregated: {50, 0, 0},
		},
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, sampleSeries()))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "2024-02")
	assert.Contains(t, html, "Agregado")
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, sampleSeries()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "output is a PNG")
}

func TestRenderEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderHTML(&buf, domain.SavingSeries{}), ErrEmptySeries)
	assert.ErrorIs(t, RenderPNG(&buf, domain.SavingSeries{}), ErrEmptySeries)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	htmlPath := filepath.Join(dir, "saving.html")
	require.NoError(t, WriteFile(htmlPath, sampleSeries()))
	b, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "2024-03")

	pngPath := filepath.Join(dir, "saving.PNG")
	require.NoError(t, WriteFile(pngPath, sampleSeries()))
	b, err = os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))

	err = WriteFile(filepath.Join(dir, "saving.svg"), sampleSeries())
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "saving.svg"))
	assert.True(t, os.IsNotExist(statErr), "unsupported formats create no file")
}

func TestWriteFileEmptySeries(t *testing.T) {
	for _, name := range []string{"saving.html", "saving.png"} {
		path := filepath.Join(t.TempDir(), name)

		err := WriteFile(path, domain.SavingSeries{})
		assert.ErrorIs(t, err, ErrEmptySeries)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "%s: an empty series creates no file", name)
	}
}
