package contract

type AgentType string

const (
	AgentTypeReceptionist AgentType = "receptionist"
	AgentTypeClinical     AgentType = "clinical"
)

// Route is the per-turn decision. It is derived from the session identity
// and the message text, never stored.
type Route string

const (
	RouteNeedsName    Route = "needs-name"
	RouteClinical     Route = "clinical"
	RouteReceptionist Route = "receptionist"
)

type ResponderRequest struct {
	UserMessage string `json:"user_message"`
	PatientName string `json:"patient_name,omitempty"`
	Instruction string `json:"instruction"`
}

type ResponderResponse struct {
	Message string `json:"message"`
}

// Passage is one ranked excerpt from the knowledge index.
type Passage struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	Source  string  `json:"source,omitempty"`
}

type LookupStatus string

const (
	LookupFound     LookupStatus = "found"
	LookupNotFound  LookupStatus = "not_found"
	LookupAmbiguous LookupStatus = "ambiguous"
)

// Advisory strings for the non-exceptional lookup outcomes. These exact
// texts are part of the user-facing contract.
const (
	AdvisoryNoPatient       = "No patient found with that name."
	AdvisoryMultiplePatient = "Multiple patients found. Please provide full name."
)

type PatientLookup struct {
	Status LookupStatus `json:"status"`
	// Document is the serialized patient record when Status is found.
	Document string `json:"document,omitempty"`
}

// Text renders the lookup the way a responder should see it: the record
// document on a hit, the advisory string otherwise.
func (l PatientLookup) Text() string {
	switch l.Status {
	case LookupFound:
		return l.Document
	case LookupAmbiguous:
		return AdvisoryMultiplePatient
	default:
		return AdvisoryNoPatient
	}
}
