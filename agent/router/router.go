// Package router holds the per-turn decision core: identity capture, the
// identity gate, keyword classification, and dispatch to the role-scoped
// responders.
package router

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/nodes"
	statex "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/state"
)

var ErrInvalidSession = nodex.ErrInvalidSession

type Config struct {
	// Keywords overrides the medical keyword table. Empty means the
	// default table.
	Keywords map[string]nodex.Category
	// TurnTimeout bounds one responder invocation, collaborator calls
	// included. Zero disables the bound.
	TurnTimeout time.Duration
}

type Router struct {
	store      statex.Store
	models     contractx.Registry
	classifier *nodex.Classifier

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	turnTimeout time.Duration

	now func() time.Time
}

func New(
	store statex.Store,
	models contractx.Registry,
	cfg Config,
) (*Router, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if models == nil {
		return nil, errors.New("responder registry is required")
	}

	r := &Router{
		store:       store,
		models:      models,
		classifier:  nodex.NewClassifier(cfg.Keywords),
		turnTimeout: cfg.TurnTimeout,
		now:         time.Now,
	}

	graphRunner, err := r.compileHandleTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	r.graphRunner = graphRunner

	return r, nil
}

// HandleTurn routes one message and returns the reply text. Responder
// failures are degraded inside the graph; an error here means the turn
// itself could not complete (bad session id, storage failure).
func (r *Router) HandleTurn(ctx context.Context, sessionID string, text string) (string, error) {
	out, err := r.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
