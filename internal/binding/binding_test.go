package binding_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flavortown/internal/binding"
	"github.com/pkordes/flavortown/internal/domain"
)

func universe() []domain.FeatureRow {
	return []domain.FeatureRow{
		{State: "California", Season: 2, Episode: 1},
		{State: "Texas", Season: 14, Episode: 2},
		{State: "Florida", Season: 29, Episode: 3},
		{State: "Ohio", Season: 2, Episode: 4},
		{State: "Texas", Season: 5, Episode: 5},
	}
}

// recordingSink collects every publish for later inspection.
type recordingSink struct {
	mu   sync.Mutex
	sels []domain.Selection
	rows [][]domain.FeatureRow
}

func (s *recordingSink) Publish(sel domain.Selection, rows []domain.FeatureRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sels = append(s.sels, sel)
	s.rows = append(s.rows, rows)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func TestNew_publishesInitialRows(t *testing.T) {
	sink := &recordingSink{}

	b := binding.New(universe(), domain.DefaultSelection(), binding.WithSink(sink))
	snap := b.Snapshot()

	require.Equal(t, 1, sink.count())
	assert.Equal(t, binding.Idle, snap.State)
	assert.Equal(t, uint64(1), snap.Revision)
	assert.Len(t, snap.Rows, 3)
	assert.Equal(t, domain.DefaultSelection(), snap.Selection)
}

func TestSetRegions_recomputesAndPublishes(t *testing.T) {
	sink := &recordingSink{}
	b := binding.New(universe(), domain.DefaultSelection(), binding.WithSink(sink))

	snap := b.SetRegions([]string{"Texas"})

	assert.Equal(t, 2, sink.count())
	assert.Equal(t, uint64(2), snap.Revision)
	assert.Equal(t, binding.Idle, snap.State)
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, 2, snap.Rows[0].Episode)
	assert.Equal(t, []int{2, 14, 29}, snap.Selection.Seasons, "season value is untouched")
}

func TestSetSeasons_emptyMeansAllSeasons(t *testing.T) {
	b := binding.New(universe(), domain.DefaultSelection())

	snap := b.SetSeasons(nil)

	require.Len(t, snap.Rows, 4)
	for _, r := range snap.Rows {
		assert.NotEqual(t, "Ohio", r.State)
	}
}

func TestSetSelection_unchangedValueDoesNotRecompute(t *testing.T) {
	sink := &recordingSink{}
	b := binding.New(universe(), domain.DefaultSelection(), binding.WithSink(sink))

	snap := b.SetSelection(domain.DefaultSelection())

	assert.Equal(t, 1, sink.count())
	assert.Equal(t, uint64(1), snap.Revision)
}

func TestSetSelection_bothAxesRecomputeOnce(t *testing.T) {
	sink := &recordingSink{}
	b := binding.New(universe(), domain.DefaultSelection(), binding.WithSink(sink))

	snap := b.SetSelection(domain.Selection{Regions: []string{"Ohio"}, Seasons: []int{2}})

	assert.Equal(t, 2, sink.count())
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "Ohio", snap.Rows[0].State)
}

func TestSetSelection_callerSliceIsCopied(t *testing.T) {
	b := binding.New(universe(), domain.Selection{})
	regions := []string{"Texas"}

	b.SetRegions(regions)
	regions[0] = "Ohio"

	assert.Equal(t, []string{"Texas"}, b.Snapshot().Selection.Regions)
}

func TestBinding_concurrentUpdatesAreSerialized(t *testing.T) {
	sink := &recordingSink{}
	b := binding.New(universe(), domain.Selection{}, binding.WithSink(sink))

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				b.SetRegions([]string{"Texas"})
			} else {
				b.SetRegions([]string{"Florida"})
			}
		}()
	}
	wg.Wait()

	snap := b.Snapshot()
	assert.Equal(t, uint64(sink.count()), snap.Revision, "every revision is published exactly once")
	for _, r := range snap.Rows {
		assert.Equal(t, snap.Selection.Regions[0], r.State, "rows match the published selection")
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", binding.Idle.String())
	assert.Equal(t, "recomputing", binding.Recomputing.String())
}
