package usp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// Selection limits. The cap is hard; the recommended floor is advisory and
// only the proceed floor blocks moving to HTML generation.
const (
	MaxSelected     = 12
	RecommendedMin  = 5
	ProceedMin      = 3
	autoSelectCount = 8
)

// ErrAtCapacity is returned by Select when the selection already holds
// MaxSelected blocks. The selection is left untouched.
var ErrAtCapacity = eris.New("usp: selection at capacity")

// Direction moves a selected block up or down one position.
type Direction int

const (
	Up Direction = iota
	Down
)

// HistoryLog is the append-only used-USP history the duplicate check reads.
// store.Store satisfies it.
type HistoryLog interface {
	History(ctx context.Context) ([]model.UsedUspRecord, error)
	AppendHistory(ctx context.Context, rec model.UsedUspRecord) error
}

// DuplicateReport is the outcome of a duplicate check: whether the block
// was already used elsewhere, and the other product names that used it.
type DuplicateReport struct {
	IsDuplicate bool     `json:"is_duplicate"`
	UsedBy      []string `json:"used_by,omitempty"`
}

// Session holds the ordered USP selection for one product. All mutations
// are synchronous and in-process; persistence happens when the wizard
// session is saved.
type Session struct {
	ProductName string
	Selected    []model.UspBlock
	Available   []model.UspBlock
}

// NewSession creates an empty selection session for the named product.
func NewSession(productName string) *Session {
	return &Session{ProductName: productName}
}

// AutoSelect seeds the session from matcher output: the first eight matched
// blocks become the pre-selection (reindexed from zero), the remainder the
// available pool. Deterministic in matcher order.
func (s *Session) AutoSelect(matched []model.UspBlock) {
	n := len(matched)
	cut := autoSelectCount
	if cut > n {
		cut = n
	}
	s.Selected = make([]model.UspBlock, cut)
	for i := 0; i < cut; i++ {
		b := matched[i]
		b.Selected = true
		b.Order = i
		s.Selected[i] = b
	}
	s.Available = make([]model.UspBlock, 0, n-cut)
	for _, b := range matched[cut:] {
		b.Selected = false
		s.Available = append(s.Available, b)
	}
}

// Select appends the block to the end of the selection and records its use
// in the history log. Fails with ErrAtCapacity when twelve blocks are
// already selected, leaving every piece of state unchanged.
func (s *Session) Select(ctx context.Context, hist HistoryLog, b model.UspBlock) error {
	if len(s.Selected) >= MaxSelected {
		return ErrAtCapacity
	}
	b.Selected = true
	b.Order = len(s.Selected)
	s.Selected = append(s.Selected, b)
	s.removeAvailable(b.ID)

	rec := model.UsedUspRecord{
		ID:          uuid.New().String(),
		UspID:       b.ID,
		Title:       b.Title,
		ProductName: s.ProductName,
		UsedAt:      time.Now().UTC(),
	}
	if err := hist.AppendHistory(ctx, rec); err != nil {
		return eris.Wrap(err, "usp: append history")
	}
	return nil
}

// Deselect moves a block back to the available pool. The history record
// stays: once flagged as used, the block remains comparable for future
// duplicate checks even if dropped from this product.
func (s *Session) Deselect(id string) bool {
	for i, b := range s.Selected {
		if b.ID != id {
			continue
		}
		s.Selected = append(s.Selected[:i], s.Selected[i+1:]...)
		s.reindex()
		b.Selected = false
		s.Available = append(s.Available, b)
		return true
	}
	return false
}

// Move swaps the block at index with its neighbor in the given direction.
// No-op at the boundaries. Order fields are re-derived to stay contiguous.
func (s *Session) Move(index int, dir Direction) {
	j := index + 1
	if dir == Up {
		j = index - 1
	}
	if index < 0 || index >= len(s.Selected) || j < 0 || j >= len(s.Selected) {
		return
	}
	s.Selected[index], s.Selected[j] = s.Selected[j], s.Selected[index]
	s.reindex()
}

// CheckDuplicate reports whether the block was already used on a different
// product: any history entry with the same USP id or the same title whose
// product name differs. Self-reuse on the same product is not a duplicate.
func (s *Session) CheckDuplicate(ctx context.Context, hist HistoryLog, b model.UspBlock) (DuplicateReport, error) {
	records, err := hist.History(ctx)
	if err != nil {
		return DuplicateReport{}, eris.Wrap(err, "usp: read history")
	}
	return checkDuplicate(records, b, s.ProductName), nil
}

func checkDuplicate(records []model.UsedUspRecord, b model.UspBlock, productName string) DuplicateReport {
	var report DuplicateReport
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.ProductName == productName {
			continue
		}
		if rec.UspID != b.ID && rec.Title != b.Title {
			continue
		}
		report.IsDuplicate = true
		if !seen[rec.ProductName] {
			seen[rec.ProductName] = true
			report.UsedBy = append(report.UsedBy, rec.ProductName)
		}
	}
	return report
}

// CanProceed reports whether the wizard may move on to HTML generation.
// Below three selected blocks the transition is hard-blocked.
func (s *Session) CanProceed() bool {
	return len(s.Selected) >= ProceedMin
}

// Advisory returns a non-blocking warning when the selection is below the
// recommended floor, or "" when the count is fine.
func (s *Session) Advisory() string {
	if len(s.Selected) < RecommendedMin {
		return "legalább 5 USP kiválasztása ajánlott a hatékony termékleíráshoz"
	}
	return ""
}

func (s *Session) reindex() {
	for i := range s.Selected {
		s.Selected[i].Order = i
	}
}

func (s *Session) removeAvailable(id string) {
	for i, b := range s.Available {
		if b.ID == id {
			s.Available = append(s.Available[:i], s.Available[i+1:]...)
			return
		}
	}
}
