package usp

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// FlowState is the duplicate-resolution state machine:
//
//	Idle → DuplicateFound → {Accepted | Rephrasing → Accepted | Cancelled}
//
// Rephrasing loops back through the duplicate check with the synthesized
// block; a rephrase that still collides lands in DuplicateFound again.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowDuplicateFound
	FlowRephrasing
	FlowAccepted
	FlowCancelled
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowDuplicateFound:
		return "duplicate_found"
	case FlowRephrasing:
		return "rephrasing"
	case FlowAccepted:
		return "accepted"
	case FlowCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Rephraser produces an SEO-unique rewording of a USP block. Implemented by
// the LLM client; the flow itself stays free of network concerns.
type Rephraser interface {
	RephraseBlock(ctx context.Context, b model.UspBlock, productName string) (model.UspBlock, error)
}

// DuplicateFlow drives the operator decision when a block selected for this
// product was already used on another one.
type DuplicateFlow struct {
	state     FlowState
	sess      *Session
	hist      HistoryLog
	candidate model.UspBlock
	report    DuplicateReport
}

// BeginSelect runs the duplicate check for b and either completes the
// selection immediately (no duplication) or parks in DuplicateFound for an
// operator decision. ErrAtCapacity propagates with no state change.
func BeginSelect(ctx context.Context, sess *Session, hist HistoryLog, b model.UspBlock) (*DuplicateFlow, error) {
	f := &DuplicateFlow{state: FlowIdle, sess: sess, hist: hist, candidate: b}

	report, err := sess.CheckDuplicate(ctx, hist, b)
	if err != nil {
		return nil, err
	}
	if report.IsDuplicate {
		f.state = FlowDuplicateFound
		f.report = report
		zap.L().Info("duplicate usp detected",
			zap.String("usp_id", b.ID),
			zap.Strings("used_by", report.UsedBy),
		)
		return f, nil
	}

	if err := sess.Select(ctx, hist, b); err != nil {
		return nil, err
	}
	f.state = FlowAccepted
	return f, nil
}

// Accept proceeds with the selection despite the duplication; the use is
// recorded in history anyway.
func (f *DuplicateFlow) Accept(ctx context.Context) error {
	if f.state != FlowDuplicateFound {
		return eris.Errorf("usp: cannot accept in state %s", f.state)
	}
	if err := f.sess.Select(ctx, f.hist, f.candidate); err != nil {
		return err
	}
	f.state = FlowAccepted
	return nil
}

// Rephrase asks r for a rewording, gives the result a synthesized id so it
// counts as a new distinct USP, and re-enters the duplicate check. On a
// clean check the rephrased block is selected and recorded.
func (f *DuplicateFlow) Rephrase(ctx context.Context, r Rephraser) error {
	if f.state != FlowDuplicateFound {
		return eris.Errorf("usp: cannot rephrase in state %s", f.state)
	}
	f.state = FlowRephrasing

	rephrased, err := r.RephraseBlock(ctx, f.candidate, f.sess.ProductName)
	if err != nil {
		f.state = FlowDuplicateFound
		return eris.Wrap(err, "usp: rephrase")
	}
	rephrased.ID = "rephrased-" + uuid.New().String()
	rephrased.ImageURL = f.candidate.ImageURL
	rephrased.ImageAlt = rephrased.Title
	f.candidate = rephrased

	report, err := f.sess.CheckDuplicate(ctx, f.hist, rephrased)
	if err != nil {
		f.state = FlowDuplicateFound
		return err
	}
	if report.IsDuplicate {
		f.state = FlowDuplicateFound
		f.report = report
		return nil
	}

	if err := f.sess.Select(ctx, f.hist, rephrased); err != nil {
		f.state = FlowDuplicateFound
		return err
	}
	f.state = FlowAccepted
	return nil
}

// Cancel abandons the selection with no state change to the session.
func (f *DuplicateFlow) Cancel() {
	if f.state == FlowDuplicateFound {
		f.state = FlowCancelled
	}
}

// State returns the current flow state.
func (f *DuplicateFlow) State() FlowState { return f.state }

// Report returns the last duplicate report.
func (f *DuplicateFlow) Report() DuplicateReport { return f.report }

// Candidate returns the block the flow is deciding about; after a rephrase
// this is the synthesized block.
func (f *DuplicateFlow) Candidate() model.UspBlock { return f.candidate }
