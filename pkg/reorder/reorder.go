// Package reorder moves contiguous blocks of lines up or down a document.
package reorder

import (
	"fmt"

	"tableflip.dev/outline/pkg/document"
)

// Mover is the document surface the reorderer needs.
type Mover interface {
	Len() int
	MoveLine(from, to int) error
}

// MoveLines shifts lines [start, end] by offset. A move that would put any
// line outside the document is rejected: it returns false and leaves the
// document unchanged. end < start or indexes outside the document are
// contract violations.
func MoveLines(m Mover, start, end, offset int) (bool, error) {
	n := m.Len()
	if end < start || start < 0 || end >= n {
		return false, fmt.Errorf("%w: move range [%d,%d] in %d lines", document.ErrContract, start, end, n)
	}
	if offset == 0 {
		return true, nil
	}
	if start+offset < 0 || end+offset >= n {
		return false, nil
	}
	// Each single-line move shifts its neighbours, so walk away from the
	// direction of travel.
	if offset < 0 {
		for i := start; i <= end; i++ {
			if err := m.MoveLine(i, i+offset); err != nil {
				return false, err
			}
		}
	} else {
		for i := end; i >= start; i-- {
			if err := m.MoveLine(i, i+offset); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}
