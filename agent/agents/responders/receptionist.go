// Package responders implements the two role-scoped responders and their
// registry: the receptionist (discharge-record lookup, supportive replies,
// and the ask-for-name gate) and the clinical responder (knowledge-index
// answers with web-search fallback).
package responders

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
)

type receptionistImpl struct {
	runner    compose.Runnable[map[string]any, *schema.Message]
	directory contractx.PatientDirectory
}

var _ contractx.Responder = (*receptionistImpl)(nil)

func newReceptionist(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	directory contractx.PatientDirectory,
) (*receptionistImpl, error) {
	runner, err := compileChatGraph(ctx, chatModel, systemPrompt, "receptionist.chat_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile receptionist graph: %v", contractx.ErrModelInvoke, err)
	}
	return &receptionistImpl{
		runner:    runner,
		directory: directory,
	}, nil
}

func (r *receptionistImpl) Run(ctx context.Context, req contractx.ResponderRequest) (contractx.ResponderResponse, error) {
	payload := map[string]any{
		"user_message": req.UserMessage,
		"patient_name": req.PatientName,
		"instruction":  req.Instruction,
	}

	// The lookup runs only once the identity gate has passed; the router
	// withholds the name before that.
	if strings.TrimSpace(req.PatientName) != "" {
		lookup, err := r.directory.Lookup(ctx, req.PatientName)
		if err != nil {
			return contractx.ResponderResponse{}, err
		}
		payload["patient_record"] = lookup.Text()
	}

	input, err := json.Marshal(payload)
	if err != nil {
		return contractx.ResponderResponse{}, fmt.Errorf("%w: marshal receptionist payload: %v", contractx.ErrValidation, err)
	}

	msg, err := r.runner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return contractx.ResponderResponse{}, fmt.Errorf("%w: receptionist invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return contractx.ResponderResponse{}, fmt.Errorf("%w: receptionist message is empty", contractx.ErrSchemaViolation)
	}

	return contractx.ResponderResponse{
		Message: strings.TrimSpace(msg.Content),
	}, nil
}
