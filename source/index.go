package source

import "sort"

// lineCache maps byte offsets to 1-based line numbers. It is built lazily:
// scanning for newlines only proceeds as far as the farthest offset queried
// so far, extended up to (and including) the next newline at or after that
// offset, per spec.md §4.1.
type lineCache struct {
	text       string
	lineStarts []int // lineStarts[i] is the offset of the first byte of line i+1
	scannedTo  int
}

func newLineCache(text string) *lineCache {
	return &lineCache{text: text, lineStarts: []int{0}, scannedTo: 0}
}

func (lc *lineCache) extendTo(offset int) {
	n := len(lc.text)
	if offset > n {
		offset = n
	}
	if lc.scannedTo >= n || lc.scannedTo > offset {
		return
	}

	i := lc.scannedTo
	for i < n {
		c := lc.text[i]
		i++
		if c == '\n' {
			lc.lineStarts = append(lc.lineStarts, i)
			if i-1 >= offset {
				break
			}
		}
	}
	lc.scannedTo = i
}

// lineAndColumn returns the 1-based line and column for offset.
func (lc *lineCache) lineAndColumn(offset int) (line, column int) {
	lc.extendTo(offset)
	idx := sort.Search(len(lc.lineStarts), func(i int) bool {
		return lc.lineStarts[i] > offset
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return idx + 1, offset - lc.lineStarts[idx] + 1
}

// Index turns byte offsets into source Locations, indexing the underlying
// text lazily as offsets are queried (original_source/pegomancy/source_info.py).
type Index struct {
	text  string
	lines *lineCache
}

// NewIndex builds an Index over text. Construction does no scanning; line
// boundaries are discovered on demand in LocationFromOffset.
func NewIndex(text string) *Index {
	return &Index{text: text, lines: newLineCache(text)}
}

// LocationFromOffset returns the 1-based (line, column) location of offset.
func (idx *Index) LocationFromOffset(offset int) Location {
	line, col := idx.lines.lineAndColumn(offset)
	return Location{Offset: offset, Line: line, Column: col}
}

// RangeFromOffsets returns the Range spanning [start, end).
func (idx *Index) RangeFromOffsets(start, end int) Range {
	return Range{Start: idx.LocationFromOffset(start), End: idx.LocationFromOffset(end)}
}

// TextInRange returns the text delimited by r.
func (idx *Index) TextInRange(r Range) string {
	return idx.text[r.Start.Offset:r.End.Offset]
}
