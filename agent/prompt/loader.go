package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/receptionist.txt
	receptionistRaw string

	//go:embed template/clinical.txt
	clinicalRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Receptionist string
	Clinical     string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings. Safe to
// call concurrently; the embed is compile-time and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Receptionist: strings.TrimSpace(receptionistRaw),
		Clinical:     strings.TrimSpace(clinicalRaw),
	}
}
