package ast

import "sort"

// LineIndex converts byte offsets into 1-based line and column numbers.
type LineIndex struct {
	starts []int
}

// NewLineIndex records the start offset of every line of src.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts}
}

// Line returns the 1-based line containing offset.
func (li *LineIndex) Line(offset int) int {
	return sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset })
}

// Position returns the 1-based line and column (in bytes) of offset.
func (li *LineIndex) Position(offset int) (line, col int) {
	line = li.Line(offset)
	return line, offset - li.starts[line-1] + 1
}

// Lines is the number of lines in the indexed text.
func (li *LineIndex) Lines() int { return len(li.starts) }
