package responders

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
)

// PDFSourceMarker annotates clinical replies whose content came from the
// local knowledge corpus rather than external search.
const PDFSourceMarker = "[PDF Source]"

type clinicalImpl struct {
	runner    compose.Runnable[map[string]any, *schema.Message]
	retriever contractx.Retriever
	search    contractx.SearchProvider
}

var _ contractx.Responder = (*clinicalImpl)(nil)

func newClinical(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	retriever contractx.Retriever,
	search contractx.SearchProvider,
) (*clinicalImpl, error) {
	runner, err := compileChatGraph(ctx, chatModel, systemPrompt, "clinical.chat_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile clinical graph: %v", contractx.ErrModelInvoke, err)
	}
	return &clinicalImpl{
		runner:    runner,
		retriever: retriever,
		search:    search,
	}, nil
}

// Run consults the knowledge index first and falls back to web search only
// when retrieval comes back empty. Replies grounded in the corpus carry the
// PDF source marker.
func (c *clinicalImpl) Run(ctx context.Context, req contractx.ResponderRequest) (contractx.ResponderResponse, error) {
	passages, err := c.retriever.Retrieve(ctx, req.UserMessage)
	if err != nil {
		// Retrieval trouble degrades to the search fallback instead of
		// failing the turn.
		log.Warn().Err(err).Msg("knowledge retrieval failed, falling back to web search")
		passages = nil
	}

	var webResults string
	if len(passages) == 0 {
		webResults = c.search.SearchOrFallback(ctx, req.UserMessage)
	}

	payload := map[string]any{
		"user_message":       req.UserMessage,
		"patient_name":       req.PatientName,
		"knowledge_passages": joinPassages(passages),
		"web_results":        webResults,
		"instruction":        req.Instruction,
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return contractx.ResponderResponse{}, fmt.Errorf("%w: marshal clinical payload: %v", contractx.ErrValidation, err)
	}

	msg, err := c.runner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return contractx.ResponderResponse{}, fmt.Errorf("%w: clinical invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return contractx.ResponderResponse{}, fmt.Errorf("%w: clinical message is empty", contractx.ErrSchemaViolation)
	}

	message := strings.TrimSpace(msg.Content)
	if len(passages) > 0 && !strings.Contains(message, PDFSourceMarker) {
		message = message + "\n\n" + PDFSourceMarker
	}

	return contractx.ResponderResponse{
		Message: message,
	}, nil
}

func joinPassages(passages []contractx.Passage) string {
	if len(passages) == 0 {
		return ""
	}
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, p.Content)
	}
	return strings.Join(parts, "\n---\n")
}
