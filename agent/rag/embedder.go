package rag

import (
	"context"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	chromem "github.com/philippgille/chromem-go"
)

// OpenAIEmbedder adapts the OpenAI SDK embeddings endpoint to the vector
// store's embedding contract. The same function must be used for indexing
// and querying so vectors stay comparable.
func OpenAIEmbedder(client *openaisdk.Client, model string) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		resp, err := client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
			Model: openaisdk.EmbeddingModel(model),
			Input: openaisdk.EmbeddingNewParamsInputUnion{
				OfString: openaisdk.String(text),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("embed text: %w", err)
		}
		if len(resp.Data) == 0 {
			return nil, fmt.Errorf("embedding response has no data")
		}

		raw := resp.Data[0].Embedding
		vec := make([]float32, len(raw))
		for i, v := range raw {
			vec[i] = float32(v)
		}
		return vec, nil
	}
}
