package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/model"
	"github.com/Saba3939/oneday-todo/internal/store"
)

// fakeStore is an in-memory store with controllable quota behavior and call
// counters, so tests can assert which operations the flow performed.
type fakeStore struct {
	tasks     []model.Task
	nextID    int64
	now       time.Time
	marker    clock.Day
	hasMarker bool

	quotaRemaining int // adds allowed before quota errors; -1 = unlimited

	listBeforeCalls int
	addCalls        int
	deleteCalls     int
}

func newFakeStore(now time.Time) *fakeStore {
	return &fakeStore{nextID: 1, now: now, quotaRemaining: -1}
}

func (f *fakeStore) put(content string, completed bool, at time.Time) model.Task {
	t := model.Task{
		ID:          f.nextID,
		Owner:       model.GuestOwner,
		Content:     content,
		IsCompleted: completed,
		OrderIndex:  len(f.tasks) + 1,
		CreatedAt:   at,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t
}

func (f *fakeStore) ListDay(ctx context.Context, day clock.Day) ([]model.Task, error) {
	var out []model.Task
	for _, t := range f.tasks {
		if t.Day() == day {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) ListBefore(ctx context.Context, day clock.Day) ([]model.Task, error) {
	f.listBeforeCalls++
	var out []model.Task
	for _, t := range f.tasks {
		if t.Day().Before(day) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) Add(ctx context.Context, content string) (model.Task, error) {
	f.addCalls++
	if f.quotaRemaining == 0 {
		return model.Task{}, &store.QuotaError{Limit: store.FreeDailyLimit, Count: store.FreeDailyLimit}
	}
	if f.quotaRemaining > 0 {
		f.quotaRemaining--
	}
	return f.put(content, false, f.now), nil
}

func (f *fakeStore) Toggle(ctx context.Context, id int64) error { return nil }

func (f *fakeStore) UpdateContent(ctx context.Context, id int64, content string) error { return nil }

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	f.deleteCalls++
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) Reorder(ctx context.Context, ids []int64) error { return nil }

func (f *fakeStore) LastAccess(ctx context.Context) (clock.Day, bool, error) {
	return f.marker, f.hasMarker, nil
}

func (f *fakeStore) SetLastAccess(ctx context.Context, day clock.Day) error {
	f.marker, f.hasMarker = day, true
	return nil
}

var _ store.Store = (*fakeStore)(nil)

// Standard setup: marker = yesterday, two incomplete
// stale tasks and one completed stale task.
func staleSetup(t *testing.T) (*fakeStore, clock.Day) {
	t.Helper()
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, clock.JST)
	yesterday := now.Add(-24 * time.Hour)

	f := newFakeStore(now)
	f.put("Buy milk", false, yesterday)
	f.put("Call dentist", false, yesterday)
	f.put("Email report", true, yesterday)
	f.marker, f.hasMarker = clock.DayOf(yesterday), true
	return f, clock.DayOf(now)
}

func TestMarkerEqualsTodayIsNoOp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, clock.JST)
	f := newFakeStore(now)
	f.put("old", false, now.Add(-24*time.Hour))
	f.marker, f.hasMarker = clock.DayOf(now), true

	flow := New(f)
	needsInput, err := flow.Check(ctx, clock.DayOf(now))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if needsInput {
		t.Error("Check requested a selection although the marker is today")
	}
	if f.listBeforeCalls != 0 || f.addCalls != 0 || f.deleteCalls != 0 {
		t.Errorf("store was touched: listBefore=%d add=%d delete=%d",
			f.listBeforeCalls, f.addCalls, f.deleteCalls)
	}
	if f.marker != clock.DayOf(now) {
		t.Errorf("marker changed to %s", f.marker)
	}
	if flow.State() != StateIdle {
		t.Errorf("state = %s, want idle", flow.State())
	}
}

func TestCarryOverBothSelected(t *testing.T) {
	ctx := context.Background()
	f, today := staleSetup(t)

	flow := New(f)
	needsInput, err := flow.Check(ctx, today)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !needsInput {
		t.Fatal("Check should await a selection")
	}
	if flow.FirstRun() {
		t.Error("not a first run")
	}

	pending := flow.Pending()
	if len(pending) != 2 {
		t.Fatalf("pending = %d tasks, want 2 (completed stale task must not be offered)", len(pending))
	}

	out, err := flow.Apply(ctx, []int64{pending[0].ID, pending[1].ID})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.CarriedOver != 2 || out.Discarded != 3 || len(out.Failed) != 0 {
		t.Errorf("outcome = %+v, want 2 carried, 3 discarded", out)
	}

	todays, _ := f.ListDay(ctx, today)
	if len(todays) != 2 {
		t.Fatalf("today has %d tasks, want 2", len(todays))
	}
	contents := map[string]bool{}
	for _, task := range todays {
		contents[task.Content] = true
		if task.IsCompleted {
			t.Errorf("carried-over task %q should start incomplete", task.Content)
		}
	}
	if !contents["Buy milk"] || !contents["Call dentist"] {
		t.Errorf("carried-over contents = %v", contents)
	}

	stale, _ := f.ListBefore(ctx, today)
	if len(stale) != 0 {
		t.Errorf("%d stale tasks remain, want 0", len(stale))
	}
	if f.marker != today {
		t.Errorf("marker = %s, want %s", f.marker, today)
	}
}

func TestCarryOverPartialSelection(t *testing.T) {
	ctx := context.Background()
	f, today := staleSetup(t)

	flow := New(f)
	if _, err := flow.Check(ctx, today); err != nil {
		t.Fatalf("Check: %v", err)
	}

	var buyMilkID int64
	for _, p := range flow.Pending() {
		if p.Content == "Buy milk" {
			buyMilkID = p.ID
		}
	}

	out, err := flow.Apply(ctx, []int64{buyMilkID})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.CarriedOver != 1 {
		t.Errorf("carried over %d, want 1", out.CarriedOver)
	}

	todays, _ := f.ListDay(ctx, today)
	if len(todays) != 1 || todays[0].Content != "Buy milk" {
		t.Errorf("today = %+v, want only Buy milk", todays)
	}

	// The unselected "Call dentist" is discarded, not preserved.
	stale, _ := f.ListBefore(ctx, today)
	if len(stale) != 0 {
		t.Errorf("%d stale tasks remain, want 0", len(stale))
	}
}

func TestDismissStillClearsStaleTasks(t *testing.T) {
	ctx := context.Background()
	f, today := staleSetup(t)

	flow := New(f)
	if _, err := flow.Check(ctx, today); err != nil {
		t.Fatalf("Check: %v", err)
	}

	// Closing the dialog without confirming anything.
	out, err := flow.Apply(ctx, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.CarriedOver != 0 || out.Discarded != 3 {
		t.Errorf("outcome = %+v, want 0 carried, 3 discarded", out)
	}

	stale, _ := f.ListBefore(ctx, today)
	if len(stale) != 0 {
		t.Errorf("%d stale tasks remain after dismissal, want 0", len(stale))
	}
	if f.marker != today {
		t.Errorf("marker = %s, want %s", f.marker, today)
	}
}

func TestNoIncompleteStaleSkipsDialog(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, clock.JST)
	yesterday := now.Add(-24 * time.Hour)

	f := newFakeStore(now)
	f.put("Email report", true, yesterday)
	f.marker, f.hasMarker = clock.DayOf(yesterday), true
	today := clock.DayOf(now)

	flow := New(f)
	needsInput, err := flow.Check(ctx, today)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if needsInput {
		t.Error("no incomplete stale tasks: dialog must be skipped")
	}

	// The completed stale task is still cleaned up and the marker stamped.
	stale, _ := f.ListBefore(ctx, today)
	if len(stale) != 0 {
		t.Errorf("%d stale tasks remain, want 0", len(stale))
	}
	if f.marker != today {
		t.Errorf("marker = %s, want %s", f.marker, today)
	}
}

func TestFirstRunIsInformational(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, clock.JST)
	f := newFakeStore(now)
	today := clock.DayOf(now)

	flow := New(f)
	needsInput, err := flow.Check(ctx, today)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !needsInput {
		t.Fatal("first run should present the informational dialog")
	}
	if !flow.FirstRun() {
		t.Error("FirstRun should be true when the marker is absent")
	}
	if len(flow.Pending()) != 0 {
		t.Errorf("pending = %d, want 0 on a fresh store", len(flow.Pending()))
	}

	if _, err := flow.Apply(ctx, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if f.marker != today {
		t.Errorf("marker = %s, want %s after first run", f.marker, today)
	}
}

func TestQuotaMidBatchSkipsTaskButCompletesCleanup(t *testing.T) {
	ctx := context.Background()
	f, today := staleSetup(t)
	f.quotaRemaining = 1 // second carry-forward add hits the quota

	flow := New(f)
	if _, err := flow.Check(ctx, today); err != nil {
		t.Fatalf("Check: %v", err)
	}
	pending := flow.Pending()
	out, err := flow.Apply(ctx, []int64{pending[0].ID, pending[1].ID})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if out.CarriedOver != 1 || len(out.Failed) != 1 {
		t.Errorf("outcome = %+v, want 1 carried and 1 failed", out)
	}

	// The known sharp edge: the failed task is gone, cleanup and marker
	// update still happen.
	stale, _ := f.ListBefore(ctx, today)
	if len(stale) != 0 {
		t.Errorf("%d stale tasks remain, want 0", len(stale))
	}
	if f.marker != today {
		t.Errorf("marker = %s, want %s", f.marker, today)
	}
}

func TestApplyWithoutCheckFails(t *testing.T) {
	flow := New(newFakeStore(time.Now()))
	if _, err := flow.Apply(context.Background(), nil); err == nil {
		t.Error("Apply without a pending selection should fail")
	}
}
