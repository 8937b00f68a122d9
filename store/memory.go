package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/quiz"
)

// Memory keeps everything in process memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	opts    Options
	ranges  Ranges // nil until the first Save
	results []quiz.Result
}

var _ Store = (*Memory)(nil)

func NewMemory(opts ...Option) *Memory {
	return &Memory{opts: Resolve(opts...)}
}

func (m *Memory) LoadAll(ctx context.Context) (Ranges, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ranges == nil {
		return Defaults(m.opts.Preset), nil
	}
	return clone(m.ranges), nil
}

func (m *Memory) Save(ctx context.Context, key string, r grid.Range) (Ranges, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := CheckKey(key); err != nil {
		return nil, fmt.Errorf("save range: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ranges == nil {
		m.ranges = Defaults(m.opts.Preset)
	}
	m.ranges[key] = r
	m.opts.Logger.Debug("range saved", "key", key, "hands", r.Count())
	return clone(m.ranges), nil
}

func (m *Memory) ResetAll(ctx context.Context) (Ranges, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.ranges = nil
	m.mu.Unlock()
	m.opts.Logger.Info("ranges reset")
	return Defaults(m.opts.Preset), nil
}

func (m *Memory) AppendResult(ctx context.Context, r quiz.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = quiz.AppendCapped(m.results, r, quiz.MaxResults)
	return nil
}

func (m *Memory) LoadResults(ctx context.Context) ([]quiz.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]quiz.Result, len(m.results))
	copy(out, m.results)
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}
