package responders

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
	llmx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/llm"
	promptx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/prompt"
)

// Deps are the external collaborators each responder is allowed to use:
// the receptionist gets the patient directory, the clinical responder gets
// the knowledge retriever and the web-search boundary.
type Deps struct {
	Directory contractx.PatientDirectory
	Retriever contractx.Retriever
	Search    contractx.SearchProvider
}

type registryImpl struct {
	receptionist contractx.Responder
	clinical     contractx.Responder
}

func (r *registryImpl) Receptionist() contractx.Responder {
	return r.receptionist
}

func (r *registryImpl) Clinical() contractx.Responder {
	return r.clinical
}

func NewRegistry(ctx context.Context, cfg llmx.Config, deps Deps) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Directory == nil {
		return nil, errors.New("patient directory is required")
	}
	if deps.Retriever == nil {
		return nil, errors.New("knowledge retriever is required")
	}
	if deps.Search == nil {
		return nil, errors.New("search provider is required")
	}

	prompts := promptx.LoadPromptSet()

	receptionistModelCfg := cfg.GroqFor(contractx.AgentTypeReceptionist)
	receptionistModel, err := receptionistModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create receptionist model: %v", contractx.ErrModelInvoke, err)
	}
	clinicalModelCfg := cfg.GroqFor(contractx.AgentTypeClinical)
	clinicalModel, err := clinicalModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create clinical model: %v", contractx.ErrModelInvoke, err)
	}

	receptionist, err := newReceptionist(ctx, receptionistModel, prompts.Receptionist, deps.Directory)
	if err != nil {
		return nil, err
	}
	clinical, err := newClinical(ctx, clinicalModel, prompts.Clinical, deps.Retriever, deps.Search)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		receptionist: receptionist,
		clinical:     clinical,
	}, nil
}
