package state

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	now := time.Now().UTC()

	st := NewSessionState("session-1", now)
	if err := st.CapturePatientName("Jane Doe", now); err != nil {
		t.Fatalf("CapturePatientName() error = %v", err)
	}
	st.Append(RoleUser, "Hello", now)

	if err := store.Save(context.Background(), st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the original after Save must not leak into the store.
	st.PatientName = "Someone Else"

	loaded, err := store.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.PatientName != "Jane Doe" {
		t.Fatalf("PatientName = %q, want %q", loaded.PatientName, "Jane Doe")
	}
	if len(loaded.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(loaded.History))
	}
}

func TestInMemoryStoreLoadMissing(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() error = %v, want ErrStateNotFound", err)
	}
}

func TestInMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	now := time.Now().UTC()

	if err := store.Save(context.Background(), NewSessionState("session-1", now)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(context.Background(), "session-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(context.Background(), "session-1"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() after delete error = %v, want ErrStateNotFound", err)
	}
}

func TestInMemoryStoreRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()

	if err := store.Save(context.Background(), nil); !errors.Is(err, ErrNilSessionState) {
		t.Fatalf("Save(nil) error = %v, want ErrNilSessionState", err)
	}
	if err := store.Save(context.Background(), &SessionState{}); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Save(no id) error = %v, want ErrInvalidSession", err)
	}
	if _, err := store.Load(context.Background(), "  "); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Load(blank) error = %v, want ErrInvalidSession", err)
	}
}
