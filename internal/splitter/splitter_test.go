package splitter_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vkozyrev/gemmatran/internal/splitter"
)

func TestSplit_ShortText(t *testing.T) {
	text := "Hello, world!"
	chunks := splitter.New(100, 0).Split(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected %q, got %q", text, chunks[0])
	}
}

func TestSplit_EmptyText(t *testing.T) {
	chunks := splitter.New(100, 0).Split("")
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %v", chunks)
	}
}

func TestSplit_WhitespaceOnly(t *testing.T) {
	text := strings.Repeat(" \n", 20)
	chunks := splitter.New(7, 0).Split(text)
	if len(chunks) == 0 {
		t.Fatal("expected non-empty chunks for whitespace input")
	}
	if rejoined := strings.Join(chunks, ""); rejoined != text {
		t.Errorf("whitespace not preserved: got %q, want %q", rejoined, text)
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	texts := []string{
		"The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs. How vexingly quick daft zebras jump!",
		"First paragraph with several sentences. Another one here!\n\nSecond paragraph, shorter.\n\nThird paragraph ends the document.",
		"one-extremely-long-unbroken-token-without-any-natural-boundaries-inside-it-at-all plus trailing words",
		"Περιγραφή σε ελληνικά. Ακολουθεί δεύτερη πρόταση· και τρίτη.",
		"line one\nline two\nline three\nline four\n",
	}

	for _, sizes := range []int{1, 2, 7, 25, 80} {
		for _, text := range texts {
			chunks := splitter.New(sizes, 0).Split(text)
			if rejoined := strings.Join(chunks, ""); rejoined != text {
				t.Errorf("size %d: round trip failed\n got %q\nwant %q", sizes, rejoined, text)
			}
		}
	}
}

func TestSplit_ChunkSizeBound(t *testing.T) {
	text := "A fairly ordinary document. It has sentences of varying length, commas, and words. " +
		strings.Repeat("More filler text to push past several boundaries. ", 10)

	for _, size := range []int{5, 16, 50, 200} {
		for i, c := range splitter.New(size, 0).Split(text) {
			if n := utf8.RuneCountInString(c); n > size {
				t.Errorf("size %d: chunk %d has %d runes: %q", size, i, n, c)
			}
		}
	}
}

func TestSplit_SentenceBoundaryPreferred(t *testing.T) {
	text := "Hello world. This is a test."
	chunks := splitter.New(15, 0).Split(text)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if strings.TrimSpace(chunks[0]) != "Hello world." {
		t.Errorf("expected first chunk to end at the sentence boundary, got %q", chunks[0])
	}
	if strings.TrimSpace(chunks[1]) != "This is a test." {
		t.Errorf("expected second chunk to be the second sentence, got %q", chunks[1])
	}
	for i, c := range chunks {
		for _, word := range []string{"Hello", "world", "This", "test"} {
			if strings.Contains(c, word[:3]) && !strings.Contains(c, word) {
				t.Errorf("chunk %d breaks mid-word: %q", i, c)
			}
		}
	}
}

func TestSplit_ParagraphBoundaryPreferred(t *testing.T) {
	para1 := "First paragraph text."
	para2 := "Second paragraph text."
	chunks := splitter.New(30, 0).Split(para1 + "\n\n" + para2)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], para1) {
		t.Errorf("first chunk should start with the first paragraph: %q", chunks[0])
	}
	if chunks[1] != para2 {
		t.Errorf("second chunk should be the second paragraph: %q", chunks[1])
	}
}

func TestSplit_SizeOne(t *testing.T) {
	text := "ab c"
	chunks := splitter.New(1, 0).Split(text)
	if len(chunks) != len(text) {
		t.Fatalf("expected one chunk per character, got %d chunks: %v", len(chunks), chunks)
	}
	for i, c := range chunks {
		if c != string(text[i]) {
			t.Errorf("chunk %d: got %q, want %q", i, c, string(text[i]))
		}
	}
}

func TestSplit_LongWordFallsThroughToHardCut(t *testing.T) {
	word := strings.Repeat("x", 37)
	chunks := splitter.New(10, 0).Split(word)

	if rejoined := strings.Join(chunks, ""); rejoined != word {
		t.Errorf("round trip failed for unbroken word: %q", rejoined)
	}
	for i, c := range chunks {
		if utf8.RuneCountInString(c) > 10 {
			t.Errorf("chunk %d exceeds bound: %q", i, c)
		}
	}
}

func TestSplit_UnsplittablePieceKeptWholeWithoutFallback(t *testing.T) {
	// Chain without the "" terminator: an unbroken word longer than the
	// budget is kept intact instead of being dropped.
	s := splitter.NewWithSeparators(5, 0, []string{" "})
	chunks := s.Split("tiny enormousword end")

	found := false
	for _, c := range chunks {
		if strings.Contains(c, "enormousword") {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized word lost: %v", chunks)
	}
	if rejoined := strings.Join(chunks, ""); rejoined != "tiny enormousword end" {
		t.Errorf("round trip failed: %q", rejoined)
	}
}

func TestSplit_OverlapPrefix(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	overlap := 4
	base := splitter.New(20, 0).Split(text)
	chunks := splitter.New(20, overlap).Split(text)

	if len(chunks) != len(base) {
		t.Fatalf("overlap changed chunk count: %d vs %d", len(chunks), len(base))
	}
	if chunks[0] != base[0] {
		t.Errorf("first chunk must not gain a prefix: %q", chunks[0])
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(base[i-1])
		want := string(prev[len(prev)-overlap:]) + base[i]
		if chunks[i] != want {
			t.Errorf("chunk %d: got %q, want %q", i, chunks[i], want)
		}
	}
}

func TestSplit_OverlapRoundTripMinusPrefixes(t *testing.T) {
	text := "Sentence number one here. Sentence number two follows. Sentence three closes."
	overlap := 6
	chunks := splitter.New(30, overlap).Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	var sb strings.Builder
	for i, c := range chunks {
		if i == 0 {
			sb.WriteString(c)
			continue
		}
		runes := []rune(c)
		sb.WriteString(string(runes[overlap:]))
	}
	if sb.String() != text {
		t.Errorf("stripping overlap prefixes did not recover input:\n got %q\nwant %q", sb.String(), text)
	}
}

func TestSplit_OverlapShorterThanPreviousChunk(t *testing.T) {
	// Previous chunk shorter than the overlap window: the whole chunk is
	// used as the prefix, never more.
	s := splitter.NewWithSeparators(3, 10, []string{""})
	chunks := s.Split("abcdef")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[1] != "abc"+"def" {
		t.Errorf("expected full-chunk prefix, got %q", chunks[1])
	}
}

func TestSplit_ClauseBoundary(t *testing.T) {
	// No sentence boundary fits, so the clause comma should be used.
	text := "first clause here, second clause there, third clause everywhere"
	chunks := splitter.New(25, 0).Split(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %v", chunks)
	}
	if !strings.HasSuffix(chunks[0], ", ") {
		t.Errorf("expected first chunk to end at a clause boundary, got %q", chunks[0])
	}
	if rejoined := strings.Join(chunks, ""); rejoined != text {
		t.Errorf("round trip failed: %q", rejoined)
	}
}

func TestSplit_UnicodeRuneCounting(t *testing.T) {
	// 12 runes, 24 bytes; a byte-counting splitter would cut too early.
	text := "ααααααααααρρ"
	chunks := splitter.New(12, 0).Split(text)
	if len(chunks) != 1 {
		t.Errorf("expected a single chunk of 12 runes, got %v", chunks)
	}
}
