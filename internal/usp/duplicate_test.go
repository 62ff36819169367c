package usp

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// stubRephraser returns canned rewordings in order.
type stubRephraser struct {
	results []model.UspBlock
	err     error
	calls   int
}

func (r *stubRephraser) RephraseBlock(ctx context.Context, b model.UspBlock, productName string) (model.UspBlock, error) {
	if r.err != nil {
		return model.UspBlock{}, r.err
	}
	res := r.results[r.calls]
	r.calls++
	return res, nil
}

func TestDuplicateFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	candidate := model.UspBlock{ID: "zaj-1", Title: "Halk működés", ImageURL: "/images/usps/halk.jpg"}
	otherUse := model.UsedUspRecord{UspID: "zaj-1", Title: "Halk működés", ProductName: "Vento 125"}

	t.Run("clean select goes straight to accepted", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		hist := &memHistory{}

		flow, err := BeginSelect(ctx, s, hist, candidate)
		require.NoError(t, err)
		assert.Equal(t, FlowAccepted, flow.State())
		assert.Len(t, s.Selected, 1)
		assert.Len(t, hist.records, 1)
	})

	t.Run("duplicate parks for a decision", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		hist := &memHistory{records: []model.UsedUspRecord{otherUse}}

		flow, err := BeginSelect(ctx, s, hist, candidate)
		require.NoError(t, err)
		assert.Equal(t, FlowDuplicateFound, flow.State())
		assert.Equal(t, []string{"Vento 125"}, flow.Report().UsedBy)
		assert.Empty(t, s.Selected)
		assert.Len(t, hist.records, 1)
	})

	t.Run("accept selects despite the duplication", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		hist := &memHistory{records: []model.UsedUspRecord{otherUse}}

		flow, err := BeginSelect(ctx, s, hist, candidate)
		require.NoError(t, err)
		require.NoError(t, flow.Accept(ctx))
		assert.Equal(t, FlowAccepted, flow.State())
		assert.Len(t, s.Selected, 1)
		assert.Len(t, hist.records, 2)
	})

	t.Run("cancel leaves the session untouched", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		hist := &memHistory{records: []model.UsedUspRecord{otherUse}}

		flow, err := BeginSelect(ctx, s, hist, candidate)
		require.NoError(t, err)
		flow.Cancel()
		assert.Equal(t, FlowCancelled, flow.State())
		assert.Empty(t, s.Selected)
		assert.Len(t, hist.records, 1)
	})

	t.Run("rephrase synthesizes a new id and selects on a clean check", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		hist := &memHistory{records: []model.UsedUspRecord{otherUse}}
		r := &stubRephraser{results: []model.UspBlock{
			{ID: "zaj-1", Title: "Diszkrét, csendes üzem", Paragraph1: "átfogalmazva", ImageURL: "/images/usps/halk.jpg"},
		}}

		flow, err := BeginSelect(ctx, s, hist, candidate)
		require.NoError(t, err)
		require.NoError(t, flow.Rephrase(ctx, r))

		assert.Equal(t, FlowAccepted, flow.State())
		require.Len(t, s.Selected, 1)
		got := s.Selected[0]
		assert.True(t, len(got.ID) > len("rephrased-"))
		assert.Contains(t, got.ID, "rephrased-")
		assert.NotEqual(t, candidate.ID, got.ID)
		assert.Equal(t, "Diszkrét, csendes üzem", got.Title)
		assert.Equal(t, candidate.ImageURL, got.ImageURL)
		assert.Equal(t, got.Title, got.ImageAlt)
	})

	t.Run("rephrase that still collides parks again", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		hist := &memHistory{records: []model.UsedUspRecord{
			otherUse,
			{UspID: "masik", Title: "Diszkrét, csendes üzem", ProductName: "Dalap 100"},
		}}
		r := &stubRephraser{results: []model.UspBlock{
			{ID: "zaj-1", Title: "Diszkrét, csendes üzem"},
		}}

		flow, err := BeginSelect(ctx, s, hist, candidate)
		require.NoError(t, err)
		require.NoError(t, flow.Rephrase(ctx, r))

		assert.Equal(t, FlowDuplicateFound, flow.State())
		assert.Equal(t, []string{"Dalap 100"}, flow.Report().UsedBy)
		assert.Empty(t, s.Selected)
	})

	t.Run("rephrase failure returns to duplicate found", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		hist := &memHistory{records: []model.UsedUspRecord{otherUse}}
		r := &stubRephraser{err: eris.New("api down")}

		flow, err := BeginSelect(ctx, s, hist, candidate)
		require.NoError(t, err)
		assert.Error(t, flow.Rephrase(ctx, r))
		assert.Equal(t, FlowDuplicateFound, flow.State())
	})

	t.Run("accept outside duplicate found is rejected", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		hist := &memHistory{}

		flow, err := BeginSelect(ctx, s, hist, candidate)
		require.NoError(t, err)
		require.Equal(t, FlowAccepted, flow.State())
		assert.Error(t, flow.Accept(ctx))
	})

	t.Run("capacity error propagates with no flow", func(t *testing.T) {
		t.Parallel()
		s := NewSession("Silenta 100")
		hist := &memHistory{}
		s.AutoSelect(blocks(8))
		for i := 0; i < 4; i++ {
			require.NoError(t, s.Select(ctx, hist, model.UspBlock{ID: string(rune('a' + i)), Title: "x"}))
		}

		_, err := BeginSelect(ctx, s, hist, candidate)
		assert.ErrorIs(t, err, ErrAtCapacity)
	})
}
