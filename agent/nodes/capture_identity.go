package routernode

import (
	"fmt"
	"strings"
	"unicode"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
)

// CaptureIdentity applies the name-candidate heuristic while the session
// identity is unset. Once a name is captured it is never overwritten, even
// when a later message also looks like a name.
func CaptureIdentity(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	if in.Session.IdentityKnown() {
		return in, nil
	}

	if name, ok := NameCandidate(in.Text); ok {
		if err := in.Session.CapturePatientName(name, in.Now); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// NameCandidate accepts the trimmed input as a patient name iff it has at
// least two whitespace-separated tokens and every token consists solely of
// letters. Conservative on purpose: hyphenated and apostrophe'd names are
// rejected, a known limitation of the heuristic.
func NameCandidate(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	tokens := strings.Fields(trimmed)
	if len(tokens) < 2 {
		return "", false
	}
	for _, token := range tokens {
		for _, r := range token {
			if !unicode.IsLetter(r) {
				return "", false
			}
		}
	}
	return trimmed, true
}
