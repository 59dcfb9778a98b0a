package selection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/domain"
	"quotedesk/internal/selection"
)

func TestStore_SaveAndGet(t *testing.T) {
	store := selection.NewStore(time.Minute, time.Minute)

	sel := domain.PlanSelection{DocumentID: "doc-1", SelectedPlans: []string{"Option A"}}
	store.Save("user-1", "doc-1", sel)

	got, ok := store.Get("user-1", "doc-1")
	require.True(t, ok)
	assert.Equal(t, sel, got)

	_, ok = store.Get("user-1", "doc-2")
	assert.False(t, ok)
	_, ok = store.Get("user-2", "doc-1")
	assert.False(t, ok)
}

func TestStore_SaveReplacesWholeSelection(t *testing.T) {
	store := selection.NewStore(time.Minute, time.Minute)

	store.Save("user-1", "doc-1", domain.PlanSelection{SelectedPlans: []string{"Option A", "Option B"}})
	store.Save("user-1", "doc-1", domain.PlanSelection{SelectedPlans: []string{"Option C"}})

	got, ok := store.Get("user-1", "doc-1")
	require.True(t, ok)
	assert.Equal(t, []string{"Option C"}, got.SelectedPlans)
}

func TestStore_GetAllReturnsCopy(t *testing.T) {
	store := selection.NewStore(time.Minute, time.Minute)

	store.Save("user-1", "doc-1", domain.PlanSelection{SelectedPlans: []string{"Option A"}})
	store.Save("user-1", "doc-2", domain.PlanSelection{SelectedPlans: []string{"Option B"}})

	all := store.GetAll("user-1")
	require.Len(t, all, 2)

	// Mutating the returned map must not touch the stored state.
	delete(all, "doc-1")
	_, ok := store.Get("user-1", "doc-1")
	assert.True(t, ok)
}

func TestStore_Remove(t *testing.T) {
	store := selection.NewStore(time.Minute, time.Minute)

	store.Save("user-1", "doc-1", domain.PlanSelection{SelectedPlans: []string{"Option A"}})
	store.Save("user-1", "doc-2", domain.PlanSelection{SelectedPlans: []string{"Option B"}})

	store.Remove("user-1", "doc-1")
	_, ok := store.Get("user-1", "doc-1")
	assert.False(t, ok)
	_, ok = store.Get("user-1", "doc-2")
	assert.True(t, ok)

	// Removing an absent document is a no-op.
	store.Remove("user-1", "doc-99")
	_, ok = store.Get("user-1", "doc-2")
	assert.True(t, ok)
}

func TestStore_Clear(t *testing.T) {
	store := selection.NewStore(time.Minute, time.Minute)

	store.Save("user-1", "doc-1", domain.PlanSelection{SelectedPlans: []string{"Option A"}})
	store.Save("user-2", "doc-1", domain.PlanSelection{SelectedPlans: []string{"Option B"}})

	store.Clear("user-1")
	assert.Empty(t, store.GetAll("user-1"))

	// Other users' working sets are untouched.
	_, ok := store.Get("user-2", "doc-1")
	assert.True(t, ok)
}

func TestStore_EntriesExpire(t *testing.T) {
	store := selection.NewStore(30*time.Millisecond, 10*time.Millisecond)

	store.Save("user-1", "doc-1", domain.PlanSelection{SelectedPlans: []string{"Option A"}})
	_, ok := store.Get("user-1", "doc-1")
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = store.Get("user-1", "doc-1")
	assert.False(t, ok)
}
