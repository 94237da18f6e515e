package routernode

import (
	"testing"
	"time"

	statex "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/state"
)

func TestNameCandidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Jane Doe", "Jane Doe", true},
		{"  Jane   Doe  ", "Jane   Doe", true},
		{"Maria del Carmen", "Maria del Carmen", true},
		{"hi", "", false},
		{"Jane 2", "", false},
		{"Jane-Marie Doe", "", false},
		{"O'Brien Smith", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tc := range tests {
		got, ok := NameCandidate(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NameCandidate(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCaptureIdentitySetsNameOnce(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	in := &GraphState{
		Text:    "Jane Doe",
		Now:     now,
		Session: statex.NewSessionState("session-1", now),
	}

	out, err := CaptureIdentity(in)
	if err != nil {
		t.Fatalf("CaptureIdentity() error = %v", err)
	}
	if out.Session.PatientName != "Jane Doe" {
		t.Fatalf("PatientName = %q, want %q", out.Session.PatientName, "Jane Doe")
	}

	// A later name-looking message must not overwrite the identity.
	out.Text = "John Smith"
	out, err = CaptureIdentity(out)
	if err != nil {
		t.Fatalf("CaptureIdentity() second turn error = %v", err)
	}
	if out.Session.PatientName != "Jane Doe" {
		t.Fatalf("PatientName overwritten to %q", out.Session.PatientName)
	}
}

func TestCaptureIdentityRejectsNonNames(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	for _, input := range []string{"hi", "Jane 2", "my potassium is high"} {
		in := &GraphState{
			Text:    input,
			Now:     now,
			Session: statex.NewSessionState("session-1", now),
		}
		out, err := CaptureIdentity(in)
		if err != nil {
			t.Fatalf("CaptureIdentity(%q) error = %v", input, err)
		}
		if out.Session.IdentityKnown() {
			t.Fatalf("CaptureIdentity(%q) set identity %q", input, out.Session.PatientName)
		}
	}
}
