package routernode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
	statex "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/state"
)

// SaveState appends the exchange to the session history and persists the
// session.
func SaveState(
	ctx context.Context,
	in *GraphState,
	store statex.Store,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Session.Append(statex.RoleUser, in.Text, in.Now)
	in.Session.Append(statex.RoleAssistant, in.Message, in.Now)

	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}
	if err := store.Save(ctx, in.Session); err != nil {
		return nil, err
	}
	return in, nil
}
