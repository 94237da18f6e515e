package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/nodes"
	statex "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/state"
)

type fakeResponder struct {
	prefix string
	err    error

	lastReq contractx.ResponderRequest
	calls   int
}

func (f *fakeResponder) Run(_ context.Context, req contractx.ResponderRequest) (contractx.ResponderResponse, error) {
	f.lastReq = req
	f.calls++
	if f.err != nil {
		return contractx.ResponderResponse{}, f.err
	}
	return contractx.ResponderResponse{Message: f.prefix + ": " + req.UserMessage}, nil
}

type fakeRegistry struct {
	receptionist *fakeResponder
	clinical     *fakeResponder
}

func (f *fakeRegistry) Receptionist() contractx.Responder { return f.receptionist }
func (f *fakeRegistry) Clinical() contractx.Responder     { return f.clinical }

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		receptionist: &fakeResponder{prefix: "receptionist"},
		clinical:     &fakeResponder{prefix: "clinical"},
	}
}

func TestHandleTurnIdentityGateThenRouting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statex.NewInMemoryStore()
	registry := newFakeRegistry()

	r, err := New(store, registry, Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Turn 1: no identity yet, a greeting routes through the name prompt.
	reply, err := r.HandleTurn(ctx, "session-1", "Hello")
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if reply == "" {
		t.Fatal("empty reply")
	}
	if registry.receptionist.calls != 1 || registry.clinical.calls != 0 {
		t.Fatalf("calls = (%d, %d), want receptionist only", registry.receptionist.calls, registry.clinical.calls)
	}
	if registry.receptionist.lastReq.PatientName != "" {
		t.Fatalf("patient name leaked before capture: %q", registry.receptionist.lastReq.PatientName)
	}

	// Turn 2: a name-shaped message captures identity.
	if _, err := r.HandleTurn(ctx, "session-1", "Jane Doe"); err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	st, err := store.Load(ctx, "session-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.PatientName != "Jane Doe" {
		t.Fatalf("PatientName = %q, want %q", st.PatientName, "Jane Doe")
	}
	if registry.receptionist.lastReq.PatientName != "Jane Doe" {
		t.Fatalf("responder did not receive captured name: %q", registry.receptionist.lastReq.PatientName)
	}

	// Turn 3: medical keywords now reach the clinical responder.
	reply, err = r.HandleTurn(ctx, "session-1", "I have swelling in my legs")
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if !strings.HasPrefix(reply, "clinical:") {
		t.Fatalf("reply = %q, want clinical responder", reply)
	}
	if registry.clinical.lastReq.PatientName != "Jane Doe" {
		t.Fatalf("clinical request name = %q", registry.clinical.lastReq.PatientName)
	}

	// Turn 4: general chit-chat goes back to the receptionist.
	reply, err = r.HandleTurn(ctx, "session-1", "thank you")
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if !strings.HasPrefix(reply, "receptionist:") {
		t.Fatalf("reply = %q, want receptionist responder", reply)
	}
}

func TestHandleTurnIdentityNeverOverwritten(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statex.NewInMemoryStore()
	r, err := New(store, newFakeRegistry(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := r.HandleTurn(ctx, "session-1", "Jane Doe"); err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if _, err := r.HandleTurn(ctx, "session-1", "John Smith"); err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}

	st, err := store.Load(ctx, "session-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.PatientName != "Jane Doe" {
		t.Fatalf("PatientName = %q, want the first captured name", st.PatientName)
	}
}

func TestHandleTurnDegradesResponderFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statex.NewInMemoryStore()
	registry := newFakeRegistry()
	registry.receptionist.err = errors.New("backend down")

	r, err := New(store, registry, Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	reply, err := r.HandleTurn(ctx, "session-1", "Hello")
	if err != nil {
		t.Fatalf("HandleTurn() error = %v, want degraded reply", err)
	}
	if reply != nodex.DegradedReplyNotice {
		t.Fatalf("reply = %q, want degraded notice", reply)
	}

	// The degraded turn is still recorded and the session stays usable.
	st, err := store.Load(ctx, "session-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(st.History) != 2 {
		t.Fatalf("history length = %d, want user and assistant entries", len(st.History))
	}
	if st.History[1].Text != nodex.DegradedReplyNotice {
		t.Fatalf("assistant entry = %q", st.History[1].Text)
	}
}

func TestHandleTurnAppendsHistoryPerTurn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statex.NewInMemoryStore()
	r, err := New(store, newFakeRegistry(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, text := range []string{"Hello", "Jane Doe", "I have nausea"} {
		if _, err := r.HandleTurn(ctx, "session-1", text); err != nil {
			t.Fatalf("HandleTurn(%q) error = %v", text, err)
		}
	}

	st, err := store.Load(ctx, "session-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(st.History) != 6 {
		t.Fatalf("history length = %d, want 6", len(st.History))
	}
	if st.History[0].Role != statex.RoleUser || st.History[0].Text != "Hello" {
		t.Fatalf("unexpected first entry: %#v", st.History[0])
	}
	if st.History[5].Role != statex.RoleAssistant {
		t.Fatalf("unexpected last entry role: %s", st.History[5].Role)
	}
}

func TestHandleTurnRejectsEmptySessionID(t *testing.T) {
	t.Parallel()

	r, err := New(statex.NewInMemoryStore(), newFakeRegistry(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := r.HandleTurn(context.Background(), "  ", "Hello"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("HandleTurn() error = %v, want ErrInvalidSession", err)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, newFakeRegistry(), Config{}); err == nil {
		t.Fatal("New(nil store) must fail")
	}
	if _, err := New(statex.NewInMemoryStore(), nil, Config{}); err == nil {
		t.Fatal("New(nil registry) must fail")
	}
}
