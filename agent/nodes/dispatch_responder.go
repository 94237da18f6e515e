package routernode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
)

// DegradedReplyNotice is appended to the conversation when a responder or
// its backend fails. The session itself stays alive; identity and prior
// history are untouched.
const DegradedReplyNotice = "I'm sorry, I'm having trouble responding right now. Please try again in a moment."

// DispatchResponder invokes the responder chosen for the route, bounded by
// the per-turn timeout. Responder failures degrade to a fixed notice rather
// than failing the turn.
func DispatchResponder(
	ctx context.Context,
	in *GraphState,
	models contractx.Registry,
	turnTimeout time.Duration,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	responder, agentType := pickResponder(in.Route, models)

	req := contractx.ResponderRequest{
		UserMessage: in.Text,
		Instruction: in.Instruction,
	}
	// The identity gate: no patient context reaches a responder before the
	// name is known.
	if in.Route != contractx.RouteNeedsName {
		req.PatientName = in.Session.PatientName
	}

	runCtx := ctx
	if turnTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, turnTimeout)
		defer cancel()
	}

	resp, err := responder.Run(runCtx, req)
	if err != nil {
		log.Error().Err(err).
			Str("agent", string(agentType)).
			Str("route", string(in.Route)).
			Msg("responder failed, degrading turn")
		in.Message = DegradedReplyNotice
		return in, nil
	}

	message := strings.TrimSpace(resp.Message)
	if message == "" {
		log.Error().
			Str("agent", string(agentType)).
			Str("route", string(in.Route)).
			Msg("responder returned empty message, degrading turn")
		in.Message = DegradedReplyNotice
		return in, nil
	}

	in.Message = message
	return in, nil
}

func pickResponder(route contractx.Route, models contractx.Registry) (contractx.Responder, contractx.AgentType) {
	if route == contractx.RouteClinical {
		return models.Clinical(), contractx.AgentTypeClinical
	}
	// Both the identity gate and general messages are handled by the
	// receptionist.
	return models.Receptionist(), contractx.AgentTypeReceptionist
}
