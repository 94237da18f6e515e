package routernode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Message)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: turn produced empty reply", contractx.ErrValidation)
	}
	return GraphOutput{Reply: reply, Route: in.Route}, nil
}
