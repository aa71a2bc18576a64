package writer

import (
	"fmt"
	"sync"

	"github.com/okian/rotosim/internal/domain/model"
)

// Accumulator gathers one season's rows from concurrent iterations and hands
// them back in iteration order.
type Accumulator struct {
	mu     sync.Mutex
	blocks [][]model.TrainingExample
	filled []bool
	rows   int
}

// NewAccumulator prepares room for iterations blocks of rows.
func NewAccumulator(iterations int) *Accumulator {
	return &Accumulator{
		blocks: make([][]model.TrainingExample, iterations),
		filled: make([]bool, iterations),
	}
}

// Add stores the rows of one iteration. Each iteration may be added once.
func (a *Accumulator) Add(iteration int, rows []model.TrainingExample) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if iteration < 0 || iteration >= len(a.blocks) {
		return fmt.Errorf("%w: %d outside [0, %d)", ErrIteration, iteration, len(a.blocks))
	}
	if a.filled[iteration] {
		return fmt.Errorf("%w: %d added twice", ErrIteration, iteration)
	}
	a.blocks[iteration] = rows
	a.filled[iteration] = true
	a.rows += len(rows)
	return nil
}

// Len returns the number of rows added so far.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rows
}

// Rows returns every row ordered by iteration, then by position within the
// iteration. It fails if any iteration is missing.
func (a *Accumulator) Rows() ([]model.TrainingExample, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]model.TrainingExample, 0, a.rows)
	for i, block := range a.blocks {
		if !a.filled[i] {
			return nil, fmt.Errorf("%w: iteration %d missing", ErrIncomplete, i)
		}
		out = append(out, block...)
	}
	return out, nil
}
