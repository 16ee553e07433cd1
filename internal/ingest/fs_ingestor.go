// Package ingest reads OCR text dumps off the local filesystem. The OCR
// engine itself is an external collaborator; by the time files land here
// they are plain text, one per photographed receipt.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Document is one ingested OCR dump.
type Document struct {
	SourcePath string
	Name       string
	Text       string
	HashHex    string
}

// Stats summarizes one directory scan.
type Stats struct {
	Scanned      int
	Matched      int
	Succeeded    int
	Failed       int
	Deduplicated int
}

// FSIngestor reads from the local filesystem.
type FSIngestor struct {
	logger      *slog.Logger
	allowedExts map[string]struct{} // lowercased sans '.'; nil -> default set
}

var defaultExts = map[string]struct{}{"txt": {}, "ocr": {}}

func NewFSIngestor(logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{logger: logger, allowedExts: defaultExts}
}

// IngestDirectory scans dir (non-recursive) for OCR text files, reading
// each and deduplicating by content hash within the scan. Per-file failures
// are counted, logged and skipped; only the directory read itself is fatal.
func (i *FSIngestor) IngestDirectory(ctx context.Context, dir string) ([]Document, Stats, error) {
	var stats Stats

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, stats, fmt.Errorf("read dir %s: %w", dir, err)
	}

	seen := make(map[string]struct{})
	var docs []Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return docs, stats, err
		}
		if entry.IsDir() {
			continue
		}
		stats.Scanned++

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if _, ok := i.allowedExts[ext]; !ok {
			continue
		}
		stats.Matched++

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			stats.Failed++
			i.logger.Error("ingest.read_failed", "path", path, "error", err)
			continue
		}

		sum := sha256.Sum256(data)
		hashHex := hex.EncodeToString(sum[:])
		if _, dup := seen[hashHex]; dup {
			stats.Deduplicated++
			i.logger.Info("ingest.deduplicated", "path", path, "hash", hashHex)
			continue
		}
		seen[hashHex] = struct{}{}
		stats.Succeeded++

		docs = append(docs, Document{
			SourcePath: path,
			Name:       entry.Name(),
			Text:       string(data),
			HashHex:    hashHex,
		})
	}

	i.logger.Info("ingest.complete",
		"dir", dir,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"deduplicated", stats.Deduplicated,
	)
	return docs, stats, nil
}
