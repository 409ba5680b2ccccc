package nav

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/jot/pkg/journal"
	"tableflip.dev/jot/pkg/menu"
)

type fakeStore struct {
	data    journal.Collection
	loads   int
	saves   int
	saveErr error
}

func newFakeStore(c journal.Collection) *fakeStore {
	if c == nil {
		c = journal.Collection{}
	}
	return &fakeStore{data: c.Clone()}
}

func (f *fakeStore) Load() (journal.Collection, error) {
	f.loads++
	return f.data.Clone(), nil
}

func (f *fakeStore) Save(c journal.Collection) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.data = c.Clone()
	return nil
}

func press(t *testing.T, c *Controller, keys ...string) Effect {
	t.Helper()
	var eff Effect
	for _, k := range keys {
		var err error
		eff, err = c.Handle(k)
		if err != nil {
			t.Fatalf("handle %q: %v", k, err)
		}
	}
	return eff
}

func submit(t *testing.T, c *Controller, text string) {
	t.Helper()
	if _, ok := c.Pending(); !ok {
		t.Fatal("expected a pending prompt")
	}
	if err := c.Submit(text); err != nil {
		t.Fatalf("submit %q: %v", text, err)
	}
}

func assertStore(t *testing.T, f *fakeStore, want journal.Collection) {
	t.Helper()
	if diff := cmp.Diff(want, f.data); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
}

func TestAddJournalFromEmptyCollection(t *testing.T) {
	f := newFakeStore(nil)
	c := New(f)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if eff := press(t, c, "a"); eff != EffectPrompt {
		t.Fatalf("expected prompt effect, got %v", eff)
	}
	if !c.Menu().Hidden() {
		t.Fatal("menu should be hidden while prompting")
	}
	submit(t, c, "Groceries")

	assertStore(t, f, journal.Collection{"GROCERIES": {""}})
	if c.Menu().Hidden() {
		t.Fatal("menu should be restored after the prompt closes")
	}
	if diff := cmp.Diff([]string{"GROCERIES"}, c.Menu().Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestAddNoteAppends(t *testing.T) {
	f := newFakeStore(journal.Collection{"GROCERIES": {""}})
	c := New(f)
	if err := c.StartIn("groceries"); err != nil {
		t.Fatalf("start in: %v", err)
	}
	press(t, c, "a")
	submit(t, c, "Milk")

	assertStore(t, f, journal.Collection{"GROCERIES": {"", "Milk"}})
	if diff := cmp.Diff([]string{"", "Milk"}, c.Menu().Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveNoteClampsCursor(t *testing.T) {
	f := newFakeStore(journal.Collection{"GROCERIES": {"Milk", "Eggs"}})
	c := New(f)
	if err := c.StartIn("GROCERIES"); err != nil {
		t.Fatalf("start in: %v", err)
	}
	press(t, c, "r")

	assertStore(t, f, journal.Collection{"GROCERIES": {"Eggs"}})
	if c.Menu().Index() != 0 {
		t.Fatalf("expected cursor 0, got %d", c.Menu().Index())
	}
	if c.State() != StateActingOnJournal {
		t.Fatalf("expected to stay in the journal, got %s", c.State())
	}
}

func TestRemoveLastNoteKeepsPlaceholder(t *testing.T) {
	f := newFakeStore(journal.Collection{"GROCERIES": {"Milk"}})
	c := New(f)
	if err := c.StartIn("GROCERIES"); err != nil {
		t.Fatalf("start in: %v", err)
	}
	press(t, c, "r")

	assertStore(t, f, journal.Collection{"GROCERIES": {""}})
	if c.State() != StateSelecting {
		t.Fatalf("expected return to select menu, got %s", c.State())
	}
	if sel, _ := c.Menu().Selected(); sel != "GROCERIES" {
		t.Fatalf("expected cursor on GROCERIES, got %q", sel)
	}
}

func TestStartInMissingJournal(t *testing.T) {
	f := newFakeStore(journal.Collection{"WORK": {""}})
	c := New(f)
	err := c.StartIn("groceries")
	if !errors.Is(err, ErrJournalNotFound) {
		t.Fatalf("expected ErrJournalNotFound, got %v", err)
	}
	if !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected error to wrap journal.ErrNotFound, got %v", err)
	}
	if c.State() != StateDone {
		t.Fatalf("expected terminal state, got %s", c.State())
	}
	if f.saves != 0 {
		t.Fatalf("expected no writes, got %d", f.saves)
	}
}

func TestHelpTwiceMatchesOnce(t *testing.T) {
	c := New(newFakeStore(nil))
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	press(t, c, "h")
	once := c.Menu().Title()
	press(t, c, "h")
	if c.Menu().Title() != once {
		t.Fatalf("help not idempotent:\n%q\n%q", once, c.Menu().Title())
	}
}

func TestRemoveOnlyJournalThenPositionalKeys(t *testing.T) {
	f := newFakeStore(journal.Collection{"WORK": {"standup"}})
	c := New(f)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	press(t, c, "r")
	assertStore(t, f, journal.Collection{})
	if c.Menu().Len() != 0 {
		t.Fatalf("expected empty select menu, got %v", c.Menu().Options())
	}

	saves := f.saves
	for _, k := range []string{"r", "e", "enter", "j", "k", "G", "g"} {
		if eff := press(t, c, k); eff != EffectNone {
			t.Fatalf("key %q on empty menu: expected no effect, got %v", k, eff)
		}
	}
	if f.saves != saves {
		t.Fatal("positional keys on an empty menu must not write")
	}
	if c.State() != StateSelecting {
		t.Fatalf("expected to remain selecting, got %s", c.State())
	}
}

func TestSelectBackAndQuit(t *testing.T) {
	f := newFakeStore(journal.Collection{"HOME": {""}, "WORK": {"a", "b"}})
	c := New(f)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	press(t, c, "j", "enter")
	if c.State() != StateActingOnJournal || c.Journal() != "WORK" {
		t.Fatalf("expected to act on WORK, got %s %q", c.State(), c.Journal())
	}
	if c.Menu().Kind() != menu.KindJournal {
		t.Fatalf("expected journal menu, got %s", c.Menu().Kind())
	}
	if diff := cmp.Diff([]string{"a", "b"}, c.Menu().Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	press(t, c, "b")
	if c.State() != StateSelecting {
		t.Fatalf("expected selecting after back, got %s", c.State())
	}
	if sel, _ := c.Menu().Selected(); sel != "WORK" {
		t.Fatalf("expected cursor to return to WORK, got %q", sel)
	}

	if eff := press(t, c, "q"); eff != EffectQuit {
		t.Fatalf("expected quit, got %v", eff)
	}
	if c.State() != StateDone {
		t.Fatalf("expected done, got %s", c.State())
	}
	if f.saves != 0 {
		t.Fatalf("navigation must not write, got %d saves", f.saves)
	}
}

func TestEditNoteInPlace(t *testing.T) {
	f := newFakeStore(journal.Collection{"WORK": {"a", "b", "c"}})
	c := New(f)
	if err := c.StartIn("work"); err != nil {
		t.Fatalf("start in: %v", err)
	}
	press(t, c, "j", "e")
	p, ok := c.Pending()
	if !ok || p.Initial != "b" || p.Index != 1 {
		t.Fatalf("unexpected pending prompt: %+v %v", p, ok)
	}
	submit(t, c, "B")
	assertStore(t, f, journal.Collection{"WORK": {"a", "B", "c"}})
	if c.Menu().Index() != 1 {
		t.Fatalf("expected cursor to stay on the edited note, got %d", c.Menu().Index())
	}
}

func TestCancelLeavesStoreUntouched(t *testing.T) {
	f := newFakeStore(journal.Collection{"WORK": {"a"}})
	c := New(f)
	if err := c.StartIn("WORK"); err != nil {
		t.Fatalf("start in: %v", err)
	}
	press(t, c, "e")
	c.Cancel()
	if _, ok := c.Pending(); ok {
		t.Fatal("expected no pending prompt after cancel")
	}
	if c.Menu().Hidden() {
		t.Fatal("expected menu restored after cancel")
	}
	if f.saves != 0 {
		t.Fatalf("cancel must not write, got %d saves", f.saves)
	}
}

func TestEmptyJournalNameIsNoop(t *testing.T) {
	f := newFakeStore(journal.Collection{"WORK": {"a"}})
	c := New(f)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	press(t, c, "a")
	submit(t, c, "   ")
	if f.saves != 0 {
		t.Fatalf("blank journal name must not write, got %d saves", f.saves)
	}
	assertStore(t, f, journal.Collection{"WORK": {"a"}})
}

func TestEmptyNoteIsAppended(t *testing.T) {
	f := newFakeStore(journal.Collection{"GROCERIES": {"Milk"}})
	c := New(f)
	if err := c.StartIn("groceries"); err != nil {
		t.Fatalf("start: %v", err)
	}
	press(t, c, "a")
	submit(t, c, "")
	if f.saves != 1 {
		t.Fatalf("expected one save, got %d", f.saves)
	}
	assertStore(t, f, journal.Collection{"GROCERIES": {"Milk", ""}})
	if diff := cmp.Diff([]string{"Milk", ""}, c.Menu().Options()); diff != "" {
		t.Fatalf("options (-want +got):\n%s", diff)
	}
	if idx := c.Menu().Index(); idx != 1 {
		t.Fatalf("expected cursor on the new note, got %d", idx)
	}
}

func TestAddDuplicateJournalMovesCursor(t *testing.T) {
	f := newFakeStore(journal.Collection{"HOME": {""}, "WORK": {"a"}})
	c := New(f)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	press(t, c, "a")
	submit(t, c, "work")
	assertStore(t, f, journal.Collection{"HOME": {""}, "WORK": {"a"}})
	if sel, _ := c.Menu().Selected(); sel != "WORK" {
		t.Fatalf("expected cursor on existing WORK, got %q", sel)
	}
	if c.Status() == "" {
		t.Fatal("expected a status message for the duplicate")
	}
}

func TestRenameJournal(t *testing.T) {
	f := newFakeStore(journal.Collection{"HOME": {""}, "WORK": {"a"}})
	c := New(f)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	press(t, c, "G", "e")
	submit(t, c, "office")
	assertStore(t, f, journal.Collection{"HOME": {""}, "OFFICE": {"a"}})
	if sel, _ := c.Menu().Selected(); sel != "OFFICE" {
		t.Fatalf("expected cursor on OFFICE, got %q", sel)
	}

	press(t, c, "e")
	submit(t, c, "home")
	assertStore(t, f, journal.Collection{"HOME": {""}, "OFFICE": {"a"}})
}

func TestReloadDropsRemovedJournal(t *testing.T) {
	f := newFakeStore(journal.Collection{"WORK": {"a"}})
	c := New(f)
	if err := c.StartIn("WORK"); err != nil {
		t.Fatalf("start in: %v", err)
	}
	f.data = journal.Collection{"HOME": {""}}
	if err := c.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c.State() != StateSelecting {
		t.Fatalf("expected selecting after the open journal vanished, got %s", c.State())
	}
	if diff := cmp.Diff([]string{"HOME"}, c.Menu().Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestStaleIndexReloads(t *testing.T) {
	f := newFakeStore(journal.Collection{"WORK": {"a", "b"}})
	c := New(f)
	if err := c.StartIn("WORK"); err != nil {
		t.Fatalf("start in: %v", err)
	}
	press(t, c, "j")
	f.data = journal.Collection{"WORK": {"a"}}
	press(t, c, "r")
	if f.saves != 0 {
		t.Fatalf("stale removal must not write, got %d saves", f.saves)
	}
	if diff := cmp.Diff([]string{"a"}, c.Menu().Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveFailureIsReturned(t *testing.T) {
	f := newFakeStore(journal.Collection{"WORK": {"a"}})
	f.saveErr = errors.New("disk full")
	c := New(f)
	if err := c.StartIn("WORK"); err != nil {
		t.Fatalf("start in: %v", err)
	}
	if _, err := c.Handle("r"); err == nil {
		t.Fatal("expected save failure to surface")
	}
}

func TestEveryJournalKeepsANote(t *testing.T) {
	f := newFakeStore(nil)
	c := New(f)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	steps := []func(){
		func() { press(t, c, "a"); submit(t, c, "one") },
		func() { press(t, c, "a"); submit(t, c, "two") },
		func() { press(t, c, "g", "enter", "a"); submit(t, c, "x") },
		func() { press(t, c, "r", "r") },
		func() { press(t, c, "enter", "r") },
		func() { press(t, c, "G", "enter", "a"); submit(t, c, "y") },
		func() { press(t, c, "e"); submit(t, c, "") },
		func() { press(t, c, "r", "r") },
	}
	for i, step := range steps {
		step()
		for name, notes := range f.data {
			if len(notes) == 0 {
				t.Fatalf("step %d: journal %s has no notes", i, name)
			}
		}
	}
}
