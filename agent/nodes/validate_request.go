package routernode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
	statex "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/state"
)

var (
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
	Route contractx.Route
}

type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session *statex.SessionState

	Route       contractx.Route
	Instruction string
	Message     string
}

// ValidateRequest checks the session id and stamps the turn. Message text
// is accepted as-is: any text, including nonsense, is a valid turn.
func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      strings.TrimSpace(in.Text),
		Now:       nowFn().UTC(),
	}, nil
}
