// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dag

import (
	"sort"
	"sync"

	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/utils/set"
)

// DAG is the single logical owner of the BlockDAG: the mapping from block
// id to block, the pending and finalized id sets, and the per-round index.
// Reads may happen concurrently; Ingest and FinalizeThroughRound require
// exclusive access, taken internally.
type DAG struct {
	mu sync.RWMutex

	blocks    map[ids.BlockID]Block
	children  map[ids.BlockID][]ids.BlockID
	pending   set.Set[ids.BlockID]
	finalized set.Set[ids.BlockID]
	byRound   map[uint64][]ids.BlockID
	genesis   ids.BlockID
}

// NewDAG seeds the DAG with a genesis block, which is immediately
// finalized (it has no parents and nothing to dispute).
func NewDAG(genesis Block) *DAG {
	d := &DAG{
		blocks:    map[ids.BlockID]Block{genesis.ID: genesis},
		children:  make(map[ids.BlockID][]ids.BlockID),
		pending:   set.NewSet[ids.BlockID](0),
		finalized: set.Of(genesis.ID),
		byRound:   map[uint64][]ids.BlockID{genesis.HashTimer.Round: {genesis.ID}},
		genesis:   genesis.ID,
	}
	return d
}

// Ingest validates and inserts a block: every parent must
// already exist, the block id must not already be present, and the
// HashTimer round must be currentRound or currentRound+1 (a small
// future-window is permitted). Signature and proposer-authorization checks
// are the caller's responsibility (via the signing and selection
// collaborators) and are passed in as already-evaluated booleans so this
// package stays free of a crypto dependency on its own ingestion path.
func (d *DAG) Ingest(b Block, currentRound uint64, sigValid, proposerAuthorized bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !sigValid {
		return &InvalidBlockError{Reason: ReasonBadSignature}
	}
	if !proposerAuthorized {
		return &InvalidBlockError{Reason: ReasonProposerNotAuthorized}
	}
	if _, exists := d.blocks[b.ID]; exists {
		return &InvalidBlockError{Reason: ReasonDuplicateBlock}
	}
	if b.HashTimer.Round != currentRound && b.HashTimer.Round != currentRound+1 {
		return &InvalidBlockError{Reason: ReasonBadHashTimer}
	}
	if len(b.Parents) == 0 {
		return &InvalidBlockError{Reason: ReasonMissingParent}
	}
	for _, p := range b.Parents {
		if _, ok := d.blocks[p]; !ok {
			return &InvalidBlockError{Reason: ReasonMissingParent}
		}
	}

	d.blocks[b.ID] = b
	d.pending.Add(b.ID)
	d.byRound[b.HashTimer.Round] = append(d.byRound[b.HashTimer.Round], b.ID)
	for _, p := range b.Parents {
		d.children[p] = append(d.children[p], b.ID)
	}
	return nil
}

// GetBlock returns the block for id, if known.
func (d *DAG) GetBlock(id ids.BlockID) (Block, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.blocks[id]
	return b, ok
}

// IsFinalized reports whether id is in the finalized set.
func (d *DAG) IsFinalized(id ids.BlockID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.finalized.Contains(id)
}

// PendingCount returns the number of blocks not yet finalized.
func (d *DAG) PendingCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pending.Len()
}

// Tips returns every block id with no children, sorted lexicographically
// for deterministic iteration.
func (d *DAG) Tips() []ids.BlockID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tipsLocked()
}

func (d *DAG) tipsLocked() []ids.BlockID {
	tips := make([]ids.BlockID, 0, len(d.blocks))
	for id := range d.blocks {
		if len(d.children[id]) == 0 {
			tips = append(tips, id)
		}
	}
	sort.Slice(tips, func(i, j int) bool { return tips[i].Less(tips[j]) })
	return tips
}

// CanonicalTip selects the canonical tip by: (a) highest
// HashTimer round; (b) greater cumulative D-GBDT weight of unique
// proposers along the path back to the last finalized block; (c)
// lexicographic block id. disputed blocks (those a majority of shadow
// verifiers have flagged) contribute zero weight along the path instead of
// being excluded outright.
func (d *DAG) CanonicalTip(proposerWeight map[ids.ValidatorID]fixed.Fixed, disputed set.Set[ids.BlockID]) (ids.BlockID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tips := d.tipsLocked()
	if len(tips) == 0 {
		return ids.BlockID{}, ErrInternalInvariantViolated
	}

	type candidate struct {
		id     ids.BlockID
		round  uint64
		weight fixed.Fixed
	}
	cands := make([]candidate, 0, len(tips))
	for _, tip := range tips {
		b := d.blocks[tip]
		cands = append(cands, candidate{
			id:     tip,
			round:  b.HashTimer.Round,
			weight: d.pathWeightLocked(tip, proposerWeight, disputed),
		})
	}

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.round != b.round {
			return a.round > b.round
		}
		if a.weight != b.weight {
			return a.weight > b.weight
		}
		return a.id.Less(b.id)
	})
	return cands[0].id, nil
}

// pathWeightLocked sums the fairness score of each unique proposer along
// the path from tip back to the last finalized ancestor, following the
// first parent at each step (the canonical single path through a
// BlockDAG's otherwise-merging parent structure). Disputed blocks
// contribute zero weight regardless of their proposer's score.
func (d *DAG) pathWeightLocked(tip ids.BlockID, proposerWeight map[ids.ValidatorID]fixed.Fixed, disputed set.Set[ids.BlockID]) fixed.Fixed {
	seenProposers := set.NewSet[ids.ValidatorID](0)
	total := fixed.Zero

	cur := tip
	for {
		b, ok := d.blocks[cur]
		if !ok {
			break
		}
		if !disputed.Contains(cur) && !seenProposers.Contains(b.Proposer) {
			seenProposers.Add(b.Proposer)
			total = total.Add(proposerWeight[b.Proposer])
		}
		if d.finalized.Contains(cur) || len(b.Parents) == 0 {
			break
		}
		cur = b.Parents[0]
	}
	return total
}

// FinalizeThroughRound moves every pending block with HashTimer round <= R
// into the finalized set, in HashTimer order (round, then sub-round key,
// then block id), and returns them in that order. The finalized set is
// append-only: a block already finalized is never revisited, and calling
// this again for the same or a lower R is a no-op.
func (d *DAG) FinalizeThroughRound(r uint64) []Block {
	d.mu.Lock()
	defer d.mu.Unlock()

	var toFinalize []Block
	for round := uint64(0); round <= r; round++ {
		for _, id := range d.byRound[round] {
			if !d.pending.Contains(id) {
				continue
			}
			toFinalize = append(toFinalize, d.blocks[id])
		}
	}
	sort.Slice(toFinalize, func(i, j int) bool {
		if toFinalize[i].HashTimer != toFinalize[j].HashTimer {
			return toFinalize[i].HashTimer.Less(toFinalize[j].HashTimer)
		}
		return toFinalize[i].ID.Less(toFinalize[j].ID)
	})
	for _, b := range toFinalize {
		d.pending.Remove(b.ID)
		d.finalized.Add(b.ID)
	}
	return toFinalize
}
