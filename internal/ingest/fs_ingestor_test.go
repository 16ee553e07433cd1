package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/ingest"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "comprovante1.txt", "Will Bank\nR$ 33,00\n")
	writeFile(t, dir, "comprovante2.txt", "Nubank\nR$ 150,00\n")
	writeFile(t, dir, "scan.ocr", "Caixa\nR$ 10,00\n")
	writeFile(t, dir, "foto.png", "binário ignorado")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	ing := ingest.NewFSIngestor(nil)
	docs, stats, err := ing.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Scanned)
	assert.Equal(t, 3, stats.Matched)
	assert.Equal(t, 3, stats.Succeeded)
	assert.Equal(t, 0, stats.Failed)
	assert.Len(t, docs, 3)

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
		assert.NotEmpty(t, d.Text)
		assert.NotEmpty(t, d.HashHex)
		assert.Equal(t, filepath.Join(dir, d.Name), d.SourcePath)
	}
	assert.ElementsMatch(t, []string{"comprovante1.txt", "comprovante2.txt", "scan.ocr"}, names)
}

func TestIngestDirectory_DeduplicatesByContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "mesmo conteúdo\n")
	writeFile(t, dir, "b.txt", "mesmo conteúdo\n")

	ing := ingest.NewFSIngestor(nil)
	docs, stats, err := ing.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, docs, 1)
	assert.Equal(t, 1, stats.Deduplicated)
	assert.Equal(t, 1, stats.Succeeded)
}

func TestIngestDirectory_MissingDir(t *testing.T) {
	ing := ingest.NewFSIngestor(nil)
	_, _, err := ing.IngestDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestIngestDirectory_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "conteúdo\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ing := ingest.NewFSIngestor(nil)
	_, _, err := ing.IngestDirectory(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
