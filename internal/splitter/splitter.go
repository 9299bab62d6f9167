// Package splitter divides large texts into chunks bounded by a configured
// rune count, breaking at the coarsest boundary available: paragraphs first,
// then lines, sentences, clauses, words, and finally single characters.
//
// Splitting is lossless: separators stay attached to the piece they
// terminate, nothing is trimmed, and concatenating the chunks of a
// zero-overlap split reproduces the input exactly.
package splitter

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators is the boundary priority chain, coarsest first. The
// empty string is the last resort and means a hard cut between runes.
var DefaultSeparators = []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ", ", " ", ""}

// Splitter splits text into chunks of at most chunkSize runes each.
//
// With the default chain the empty separator guarantees every chunk fits
// the budget; a caller-supplied chain without "" keeps an unsplittable
// piece whole rather than losing it. With overlap > 0 each chunk after
// the first is prefixed with the trailing overlap runes of the previous
// chunk as it stood before overlap was applied; overlap is added on top
// of chunkSize, so a chunk may grow to chunkSize+overlap runes total.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// New returns a Splitter using DefaultSeparators. chunkSize must be
// positive and overlap non-negative and smaller than chunkSize; the
// config layer enforces this before a Splitter is built.
func New(chunkSize, overlap int) *Splitter {
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: DefaultSeparators,
	}
}

// NewWithSeparators returns a Splitter with a caller-supplied boundary
// chain, coarsest first. Include "" as the final element to guarantee
// termination for any chunkSize ≥ 1.
func NewWithSeparators(chunkSize, overlap int, separators []string) *Splitter {
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: separators,
	}
}

// Split divides text into ordered chunks. Empty input yields nil.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	chunks := s.split(text, s.separators)
	return s.applyOverlap(chunks)
}

// split recursively breaks span with the given separator chain.
func (s *Splitter) split(span string, seps []string) []string {
	if utf8.RuneCountInString(span) <= s.chunkSize {
		return []string{span}
	}
	if len(seps) == 0 {
		// Caller-supplied chain exhausted without "": keep the span whole.
		return []string{span}
	}

	sep := seps[0]
	if sep == "" {
		return hardCut(span, s.chunkSize)
	}

	pieces := splitAfter(span, sep)
	if len(pieces) < 2 {
		// Separator absent; try the next, finer one.
		return s.split(span, seps[1:])
	}
	return s.pack(pieces, seps[1:])
}

// pack greedily merges consecutive pieces into chunks of at most chunkSize
// runes. A piece that alone exceeds the budget is re-split with the finer
// separators and its sub-chunks emitted in place.
func (s *Splitter) pack(pieces []string, finer []string) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, p := range pieces {
		n := utf8.RuneCountInString(p)
		if n > s.chunkSize {
			flush()
			chunks = append(chunks, s.split(p, finer)...)
			continue
		}
		if curLen+n > s.chunkSize {
			flush()
		}
		cur.WriteString(p)
		curLen += n
	}
	flush()

	return chunks
}

// applyOverlap prefixes each chunk after the first with the trailing
// overlap runes of its predecessor's pre-overlap text.
func (s *Splitter) applyOverlap(chunks []string) []string {
	if s.overlap <= 0 || len(chunks) < 2 {
		return chunks
	}

	out := make([]string, len(chunks))
	out[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		out[i] = tail(chunks[i-1], s.overlap) + chunks[i]
	}
	return out
}

// splitAfter splits text at every occurrence of sep, keeping sep attached
// to the end of the piece it terminates.
func splitAfter(text, sep string) []string {
	pieces := strings.SplitAfter(text, sep)
	// SplitAfter yields a trailing "" when text ends with sep.
	if n := len(pieces); n > 0 && pieces[n-1] == "" {
		pieces = pieces[:n-1]
	}
	return pieces
}

// hardCut slices span into runs of exactly size runes (the last run may be
// shorter). size ≥ 1 guarantees progress.
func hardCut(span string, size int) []string {
	var chunks []string
	runes := []rune(span)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// tail returns the last n runes of text.
func tail(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
