package routernode

import (
	"strings"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
)

type Category string

const (
	CategoryMedical Category = "medical"
	CategoryGeneral Category = "general"
)

// defaultMedicalKeywords is the canonical medical keyword set: symptom,
// medication, dietary, and nephrology terms.
var defaultMedicalKeywords = []string{
	"pain", "swelling", "medication", "tablet", "dose",
	"urine", "dialysis", "breath", "blood pressure",
	"potassium", "sodium", "protein", "phosphorus",
	"diet", "junk food", "food", "nutrition", "water intake",
	"fluid", "restriction", "exercise", "symptom", "condition",
	"kidney", "nephrology", "fatigue", "nausea", "vomiting",
	"cramps", "itching", "treatment", "follow-up", "appointment",
}

// DefaultKeywordTable returns the keyword -> category table used when no
// override is configured.
func DefaultKeywordTable() map[string]Category {
	table := make(map[string]Category, len(defaultMedicalKeywords))
	for _, kw := range defaultMedicalKeywords {
		table[kw] = CategoryMedical
	}
	return table
}

// Classifier is a data-driven keyword classifier. Membership is a
// case-insensitive substring test, boolean-OR over the table, so no
// tie-break between keywords is needed.
type Classifier struct {
	medical []string
}

func NewClassifier(table map[string]Category) *Classifier {
	if len(table) == 0 {
		table = DefaultKeywordTable()
	}
	c := &Classifier{}
	for kw, cat := range table {
		if cat != CategoryMedical {
			continue
		}
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			c.medical = append(c.medical, kw)
		}
	}
	return c
}

func (c *Classifier) Classify(text string) Category {
	lowered := strings.ToLower(text)
	for _, kw := range c.medical {
		if strings.Contains(lowered, kw) {
			return CategoryMedical
		}
	}
	return CategoryGeneral
}

// DecideRoute is the pure per-turn decision: a function of the session
// identity and the message text only. The identity gate is a hard
// precondition, no clinical or receptionist content before the name is
// known.
func DecideRoute(identityKnown bool, text string, classifier *Classifier) contractx.Route {
	if !identityKnown {
		return contractx.RouteNeedsName
	}
	if classifier.Classify(text) == CategoryMedical {
		return contractx.RouteClinical
	}
	return contractx.RouteReceptionist
}
