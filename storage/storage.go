// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storage defines the persistence collaborator the engine reads
// and writes finalized state through, plus an in-memory reference
// implementation suitable for tests and the simulate command.
package storage

import (
	"errors"
	"sync"

	"github.com/ippan/dlc/dag"
	"github.com/ippan/dlc/ids"
)

// ErrNotFound is returned when a lookup misses.
var ErrNotFound = errors.New("storage: not found")

// ChainStateSnapshot is the durable subset of emission.ChainState needed to
// resume after a restart: total issued supply, the last applied round, and
// the dividend pool balance. It is a plain struct (not emission.ChainState
// itself) so this package has no dependency on the emission package's
// concurrency internals.
type ChainStateSnapshot struct {
	TotalIssuedMicro  string
	LastUpdatedRound  uint64
	DividendPoolMicro string
}

// Store is the persistence collaborator: put/get finalized blocks and
// chain-state snapshots. Implementations must make Put* durable before
// returning.
type Store interface {
	PutFinalizedBlock(b dag.Block) error
	GetBlock(id ids.BlockID) (dag.Block, error)
	PutChainState(round uint64, snap ChainStateSnapshot) error
	GetChainState(round uint64) (ChainStateSnapshot, error)
	LatestChainState() (uint64, ChainStateSnapshot, error)
}

// Memory is an in-memory Store, the reference implementation used by tests
// and the simulate command.
type Memory struct {
	mu          sync.RWMutex
	blocks      map[ids.BlockID]dag.Block
	chainStates map[uint64]ChainStateSnapshot
	latestRound uint64
	hasAnyState bool
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{
		blocks:      make(map[ids.BlockID]dag.Block),
		chainStates: make(map[uint64]ChainStateSnapshot),
	}
}

func (m *Memory) PutFinalizedBlock(b dag.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[b.ID] = b
	return nil
}

func (m *Memory) GetBlock(id ids.BlockID) (dag.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blocks[id]
	if !ok {
		return dag.Block{}, ErrNotFound
	}
	return b, nil
}

func (m *Memory) PutChainState(round uint64, snap ChainStateSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chainStates[round] = snap
	if !m.hasAnyState || round >= m.latestRound {
		m.latestRound = round
		m.hasAnyState = true
	}
	return nil
}

func (m *Memory) GetChainState(round uint64) (ChainStateSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.chainStates[round]
	if !ok {
		return ChainStateSnapshot{}, ErrNotFound
	}
	return snap, nil
}

func (m *Memory) LatestChainState() (uint64, ChainStateSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.hasAnyState {
		return 0, ChainStateSnapshot{}, ErrNotFound
	}
	return m.latestRound, m.chainStates[m.latestRound], nil
}
