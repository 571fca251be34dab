package source

import "testing"

func TestLocationFromOffset(t *testing.T) {
	text := "abc\ndef\nghi"
	idx := NewIndex(text)

	cases := []struct {
		offset       int
		line, column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 1, 4}, // the newline itself belongs to line 1
		{4, 2, 1}, // 'd'
		{7, 2, 4}, // second newline
		{8, 3, 1}, // 'g'
		{10, 3, 3},
	}
	for _, tc := range cases {
		loc := idx.LocationFromOffset(tc.offset)
		if loc.Line != tc.line || loc.Column != tc.column {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tc.offset, loc.Line, loc.Column, tc.line, tc.column)
		}
	}
}

func TestLocationFromOffsetOutOfOrderQueries(t *testing.T) {
	text := "one\ntwo\nthree"
	idx := NewIndex(text)

	// Query a late offset first to force the lazy cache to extend in one
	// jump, then query an earlier offset to exercise the binary search
	// over already-cached line starts.
	late := idx.LocationFromOffset(10)
	if late.Line != 3 {
		t.Fatalf("late.Line = %d, want 3", late.Line)
	}
	early := idx.LocationFromOffset(1)
	if early.Line != 1 || early.Column != 2 {
		t.Fatalf("early = %d:%d, want 1:2", early.Line, early.Column)
	}
}

func TestTextInRange(t *testing.T) {
	idx := NewIndex("hello world")
	r := idx.RangeFromOffsets(0, 5)
	if got := idx.TextInRange(r); got != "hello" {
		t.Fatalf("got %q", got)
	}
}
