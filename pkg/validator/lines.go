package validator

import (
	"sort"
	"unicode/utf8"
)

// lineIndex maps byte offsets to zero based line and rune column.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text: text, starts: starts}
}

func (l *lineIndex) position(offset int) (line, column int) {
	line = sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	column = utf8.RuneCountInString(l.text[l.starts[line]:offset])
	return line, column
}

func (l *lineIndex) rangeOf(start, end int) Range {
	sl, sc := l.position(start)
	el, ec := l.position(end)
	return Range{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}
}
