package routernode

import (
	"fmt"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
)

func ClassifyRoute(in *GraphState, classifier *Classifier) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	if classifier == nil {
		return nil, fmt.Errorf("%w: classifier is nil", contractx.ErrValidation)
	}

	in.Route = DecideRoute(in.Session.IdentityKnown(), in.Text, classifier)
	in.Instruction = instructionFor(in.Route)
	return in, nil
}

func instructionFor(route contractx.Route) string {
	switch route {
	case contractx.RouteNeedsName:
		return "The patient's name is not known yet. Ask politely for the " +
			"patient's full name. Do not answer medical questions until the name is known."
	case contractx.RouteClinical:
		return "First consult the nephrology knowledge passages. If they are " +
			"insufficient, use the web search results. Explain clearly and add " +
			"[PDF Source] when the knowledge passages contributed."
	default:
		return "Retrieve the discharge summary and respond warmly with helpful " +
			"follow-up questions."
	}
}
