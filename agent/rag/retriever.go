// Package rag provides the local nephrology knowledge index: an offline
// builder over the reference PDF and an online retriever over the persisted
// vector store.
package rag

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
)

type Config struct {
	Path           string  `envconfig:"PATH" split_words:"true" default:"chroma_db"`
	Collection     string  `envconfig:"COLLECTION" split_words:"true" default:"nephrology"`
	TopK           int     `envconfig:"TOP_K" split_words:"true" default:"4"`
	MinSimilarity  float32 `envconfig:"MIN_SIMILARITY" split_words:"true" default:"0.3"`
	EmbeddingModel string  `envconfig:"EMBEDDING_MODEL" split_words:"true" default:"text-embedding-3-small"`
}

// Retriever serves ranked passages from the persisted index. The index is
// built offline; Retrieve is a pure read.
type Retriever struct {
	collection    *chromem.Collection
	topK          int
	minSimilarity float32
}

var _ contractx.Retriever = (*Retriever)(nil)

func OpenRetriever(cfg Config, embed chromem.EmbeddingFunc) (*Retriever, error) {
	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector store at %s: %w", cfg.Path, err)
	}

	col, err := db.GetOrCreateCollection(cfg.Collection, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", cfg.Collection, err)
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = 4
	}

	return &Retriever{
		collection:    col,
		topK:          topK,
		minSimilarity: cfg.MinSimilarity,
	}, nil
}

func (r *Retriever) Retrieve(ctx context.Context, query string) ([]contractx.Passage, error) {
	count := r.collection.Count()
	if count == 0 {
		return nil, nil
	}

	n := r.topK
	if n > count {
		n = count
	}

	results, err := r.collection.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query knowledge index: %w", err)
	}

	passages := make([]contractx.Passage, 0, len(results))
	for _, res := range results {
		if res.Similarity < r.minSimilarity {
			continue
		}
		passages = append(passages, contractx.Passage{
			Content: res.Content,
			Score:   float64(res.Similarity),
			Source:  res.Metadata["source"],
		})
	}
	return passages, nil
}
