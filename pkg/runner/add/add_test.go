package add

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/jot/pkg/journal"
	"tableflip.dev/jot/pkg/printers"
)

type memStore struct{ data journal.Collection }

func (s *memStore) Load() (journal.Collection, error) { return s.data.Clone(), nil }
func (s *memStore) Save(c journal.Collection) error   { s.data = c.Clone(); return nil }

func TestAddCreatesJournal(t *testing.T) {
	st := &memStore{data: journal.Collection{}}
	a := Add{Journal: "groceries", Message: Join([]string{"oat", "milk"}), Quiet: true, Persistence: st}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	want := journal.Collection{"GROCERIES": {"", "oat milk"}}
	if diff := cmp.Diff(want, st.data); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
}

func TestAddAppendsToExisting(t *testing.T) {
	var out bytes.Buffer
	st := &memStore{data: journal.Collection{"WORK": {"a"}}}
	a := Add{Journal: "Work", Message: "b", Persistence: st, Printer: &printers.PrettyPrint{Out: &out}}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if diff := cmp.Diff(journal.Collection{"WORK": {"a", "b"}}, st.data); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
	if out.Len() == 0 {
		t.Fatal("expected the journal to be printed")
	}
}

func TestAddRejectsEmpty(t *testing.T) {
	st := &memStore{data: journal.Collection{}}
	if err := (&Add{Journal: "WORK", Message: "  \n ", Persistence: st}).Do(context.Background()); err == nil {
		t.Fatal("expected empty note to fail")
	}
	if err := (&Add{Journal: " ", Message: "x", Persistence: st}).Do(context.Background()); err == nil {
		t.Fatal("expected empty journal name to fail")
	}
	if len(st.data) != 0 {
		t.Fatalf("expected nothing written, got %v", st.data)
	}
}
