package rag

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	chromem "github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// BuildIndex extracts the reference PDF, splits it into overlapping windows,
// embeds each chunk, and persists everything to the local vector store.
// Run as a batch job before serving; the online path only reads the result.
func BuildIndex(ctx context.Context, cfg Config, pdfPath string, embed chromem.EmbeddingFunc) (int, error) {
	text, err := extractText(pdfPath)
	if err != nil {
		return 0, err
	}

	chunks := splitText(text, chunkSize, chunkOverlap)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no text extracted from %s", pdfPath)
	}

	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return 0, fmt.Errorf("open vector store at %s: %w", cfg.Path, err)
	}
	col, err := db.GetOrCreateCollection(cfg.Collection, nil, embed)
	if err != nil {
		return 0, fmt.Errorf("open collection %s: %w", cfg.Collection, err)
	}

	source := filepath.Base(pdfPath)
	for i, chunk := range chunks {
		doc := chromem.Document{
			ID:       fmt.Sprintf("%s-%05d", source, i),
			Content:  chunk,
			Metadata: map[string]string{"source": source},
		}
		if err := col.AddDocument(ctx, doc); err != nil {
			return i, fmt.Errorf("add chunk %d: %w", i, err)
		}
	}

	log.Info().Str("pdf", pdfPath).Int("chunks", len(chunks)).Msg("knowledge index built")
	return len(chunks), nil
}

func extractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read text from %s: %w", path, err)
	}
	return buf.String(), nil
}

// splitText cuts runes into fixed-size windows with the given overlap. The
// final window may be shorter; whitespace-only windows are dropped.
func splitText(text string, size, overlap int) []string {
	if size <= 0 || overlap >= size {
		return nil
	}

	runes := []rune(text)
	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
