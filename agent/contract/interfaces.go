package contract

import "context"

// Responder produces free-text output for one routed turn. Generation is an
// opaque external call; implementations hold no per-turn state.
type Responder interface {
	Run(ctx context.Context, req ResponderRequest) (ResponderResponse, error)
}

type Registry interface {
	Receptionist() Responder
	Clinical() Responder
}

// Retriever ranks passages from the local knowledge index against a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]Passage, error)
}

// SearchProvider is the web-search boundary. It absorbs provider failures
// and always returns renderable text.
type SearchProvider interface {
	SearchOrFallback(ctx context.Context, query string) string
}

// PatientDirectory resolves a claimed patient name to a discharge record.
type PatientDirectory interface {
	Lookup(ctx context.Context, name string) (PatientLookup, error)
}
