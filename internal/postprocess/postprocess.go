// Package postprocess strips common local-LLM artifacts from raw model
// output before it is used as translated text.
package postprocess

import (
	"regexp"
	"strings"
)

// reasoningRe matches <think>/<thinking>-style blocks that reasoning
// models emit before the answer. Each tag variant is spelled out because
// RE2 has no backreferences. An unterminated block means the model was
// cut off mid-thought, so everything from the opening tag onward goes.
var (
	reasoningRe = regexp.MustCompile(`(?is)<think(?:ing)?>.*?</think(?:ing)?>`)
	truncatedRe = regexp.MustCompile(`(?is)<think(?:ing)?>.*$`)
)

// echoRe matches a leading "Here is the translation:" style preamble that
// models sometimes prepend despite being told not to. Anchored to the
// start and requiring a colon to avoid eating legitimate content.
var echoRe = regexp.MustCompile(`(?i)^(?:(?:certainly|sure|of course)[,.]?\s+)?(?:here(?:'s| is)(?: the)? )?(?:the )?translat(?:ion|ed text)\s*:\s*`)

// Clean removes reasoning blocks, instruction echoes, and whole-text quote
// wrapping from out, returning the trimmed result.
func Clean(out string) string {
	out = reasoningRe.ReplaceAllString(out, "")
	out = truncatedRe.ReplaceAllString(out, "")
	out = strings.TrimSpace(out)
	out = strings.TrimSpace(echoRe.ReplaceAllString(out, ""))
	return unquote(out)
}

// unquote strips one matching pair of outer quotes when the entire text is
// wrapped in them.
func unquote(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	pairs := map[rune]rune{
		'"':      '"',
		'«':      '»',
		'“': '”', // curly double quotes
	}
	if closer, ok := pairs[runes[0]]; ok && runes[len(runes)-1] == closer {
		return strings.TrimSpace(string(runes[1 : len(runes)-1]))
	}
	return s
}
