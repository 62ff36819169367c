package usp

import (
	"context"
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// memHistory is an in-memory HistoryLog for tests.
type memHistory struct {
	records    []model.UsedUspRecord
	readErr    error
	appendErr  error
	appendSeen int
}

func (h *memHistory) History(ctx context.Context) ([]model.UsedUspRecord, error) {
	if h.readErr != nil {
		return nil, h.readErr
	}
	return h.records, nil
}

func (h *memHistory) AppendHistory(ctx context.Context, rec model.UsedUspRecord) error {
	if h.appendErr != nil {
		return h.appendErr
	}
	h.appendSeen++
	h.records = append(h.records, rec)
	return nil
}

func blocks(n int) []model.UspBlock {
	out := make([]model.UspBlock, n)
	for i := range out {
		out[i] = model.UspBlock{
			ID:         fmt.Sprintf("usp-%d", i),
			Title:      fmt.Sprintf("USP %d", i),
			Paragraph1: "szöveg",
		}
	}
	return out
}

func TestAutoSelect(t *testing.T) {
	t.Parallel()

	t.Run("first eight selected, rest available", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(11))

		require.Len(t, s.Selected, 8)
		require.Len(t, s.Available, 3)
		for i, b := range s.Selected {
			assert.Equal(t, i, b.Order)
			assert.True(t, b.Selected)
		}
		for _, b := range s.Available {
			assert.False(t, b.Selected)
		}
	})

	t.Run("fewer matches than eight selects all", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(3))
		assert.Len(t, s.Selected, 3)
		assert.Empty(t, s.Available)
	})
}

func TestSelect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("appends at end and records history", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(9))
		hist := &memHistory{}

		next := s.Available[0]
		require.NoError(t, s.Select(ctx, hist, next))

		require.Len(t, s.Selected, 9)
		assert.Equal(t, 8, s.Selected[8].Order)
		assert.Empty(t, s.Available)

		require.Len(t, hist.records, 1)
		assert.Equal(t, next.ID, hist.records[0].UspID)
		assert.Equal(t, "Silenta 100", hist.records[0].ProductName)
		assert.NotEmpty(t, hist.records[0].ID)
		assert.False(t, hist.records[0].UsedAt.IsZero())
	})

	t.Run("capacity rejection leaves state untouched", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(13))
		hist := &memHistory{}
		for i := 0; i < 4; i++ {
			require.NoError(t, s.Select(ctx, hist, s.Available[0]))
		}
		require.Len(t, s.Selected, 12)

		beforeSelected := append([]model.UspBlock(nil), s.Selected...)
		beforeAvailable := append([]model.UspBlock(nil), s.Available...)
		beforeAppends := hist.appendSeen

		err := s.Select(ctx, hist, s.Available[0])
		require.ErrorIs(t, err, ErrAtCapacity)
		assert.Equal(t, beforeSelected, s.Selected)
		assert.Equal(t, beforeAvailable, s.Available)
		assert.Equal(t, beforeAppends, hist.appendSeen)
	})
}

func TestDeselect(t *testing.T) {
	t.Parallel()

	t.Run("moves block back and reindexes", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(8))

		ok := s.Deselect("usp-2")
		require.True(t, ok)
		assert.Len(t, s.Selected, 7)
		for i, b := range s.Selected {
			assert.Equal(t, i, b.Order)
		}
		require.Len(t, s.Available, 1)
		assert.Equal(t, "usp-2", s.Available[0].ID)
		assert.False(t, s.Available[0].Selected)
	})

	t.Run("unknown id reports false", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(2))
		assert.False(t, s.Deselect("nincs"))
	})
}

func TestMove(t *testing.T) {
	t.Parallel()

	t.Run("swaps with neighbor", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(3))

		s.Move(1, Up)
		assert.Equal(t, "usp-1", s.Selected[0].ID)
		assert.Equal(t, "usp-0", s.Selected[1].ID)
		assert.Equal(t, 0, s.Selected[0].Order)
		assert.Equal(t, 1, s.Selected[1].Order)

		s.Move(1, Down)
		assert.Equal(t, "usp-0", s.Selected[2].ID)
	})

	t.Run("boundary moves are no-ops", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(3))
		before := append([]model.UspBlock(nil), s.Selected...)

		s.Move(0, Up)
		s.Move(2, Down)
		s.Move(-1, Down)
		s.Move(5, Up)
		assert.Equal(t, before, s.Selected)
	})
}

func TestCheckDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	block := model.UspBlock{ID: "zaj-1", Title: "Halk működés"}

	t.Run("same id on other product is duplicate", func(t *testing.T) {
		t.Parallel()
		hist := &memHistory{records: []model.UsedUspRecord{
			{UspID: "zaj-1", Title: "más cím", ProductName: "Vento 125"},
		}}
		s := NewSession("Silenta 100")

		report, err := s.CheckDuplicate(ctx, hist, block)
		require.NoError(t, err)
		assert.True(t, report.IsDuplicate)
		assert.Equal(t, []string{"Vento 125"}, report.UsedBy)
	})

	t.Run("same title with different id is duplicate", func(t *testing.T) {
		t.Parallel()
		hist := &memHistory{records: []model.UsedUspRecord{
			{UspID: "masik-id", Title: "Halk működés", ProductName: "Vento 125"},
		}}
		s := NewSession("Silenta 100")

		report, err := s.CheckDuplicate(ctx, hist, block)
		require.NoError(t, err)
		assert.True(t, report.IsDuplicate)
	})

	t.Run("self reuse on the same product is not a duplicate", func(t *testing.T) {
		t.Parallel()
		hist := &memHistory{records: []model.UsedUspRecord{
			{UspID: "zaj-1", Title: "Halk működés", ProductName: "Silenta 100"},
		}}
		s := NewSession("Silenta 100")

		report, err := s.CheckDuplicate(ctx, hist, block)
		require.NoError(t, err)
		assert.False(t, report.IsDuplicate)
		assert.Empty(t, report.UsedBy)
	})

	t.Run("used-by list is deduplicated", func(t *testing.T) {
		t.Parallel()
		hist := &memHistory{records: []model.UsedUspRecord{
			{UspID: "zaj-1", ProductName: "Vento 125"},
			{UspID: "zaj-1", ProductName: "Vento 125"},
			{UspID: "zaj-1", ProductName: "Dalap 100"},
		}}
		s := NewSession("Silenta 100")

		report, err := s.CheckDuplicate(ctx, hist, block)
		require.NoError(t, err)
		assert.Equal(t, []string{"Vento 125", "Dalap 100"}, report.UsedBy)
	})

	t.Run("history read errors propagate", func(t *testing.T) {
		t.Parallel()
		hist := &memHistory{readErr: eris.New("boom")}
		s := NewSession("Silenta 100")
		_, err := s.CheckDuplicate(ctx, hist, block)
		assert.Error(t, err)
	})
}

func TestProceedGates(t *testing.T) {
	t.Parallel()

	t.Run("below three blocks generation", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(2))
		assert.False(t, s.CanProceed())
	})

	t.Run("three allows proceeding with advisory", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(3))
		assert.True(t, s.CanProceed())
		assert.NotEmpty(t, s.Advisory())
	})

	t.Run("five clears the advisory", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		s.AutoSelect(blocks(5))
		assert.True(t, s.CanProceed())
		assert.Empty(t, s.Advisory())
	})
}
