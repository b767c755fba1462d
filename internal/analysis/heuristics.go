package analysis

import (
	"regexp"
	"strings"
)

// Fixed heuristic tables, loaded once and read-only at runtime.
// Threshold-style knobs live in types.AnalysisConfig instead.

// stopwords are excluded from concept candidates
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "but": {}, "for": {}, "nor": {}, "not": {},
	"are": {}, "was": {}, "were": {}, "been": {}, "being": {}, "will": {},
	"that": {}, "this": {}, "these": {}, "those": {}, "there": {}, "then": {},
	"than": {}, "from": {}, "with": {}, "into": {}, "onto": {}, "over": {},
	"under": {}, "about": {}, "after": {}, "before": {}, "between": {},
	"you": {}, "your": {}, "they": {}, "them": {}, "their": {}, "she": {},
	"her": {}, "his": {}, "him": {}, "its": {}, "our": {}, "ours": {},
	"have": {}, "has": {}, "had": {}, "can": {}, "could": {}, "would": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "shall": {},
	"all": {}, "any": {}, "each": {}, "few": {}, "more": {}, "most": {},
	"other": {}, "some": {}, "such": {}, "only": {}, "own": {}, "same": {},
	"very": {}, "just": {}, "also": {}, "when": {}, "where": {}, "which": {},
	"while": {}, "what": {}, "who": {}, "whom": {}, "why": {}, "how": {},
	"because": {}, "does": {}, "doing": {}, "during": {}, "here": {},
	"out": {}, "off": {}, "too": {}, "now": {}, "one": {}, "two": {},
	"use": {}, "used": {}, "using": {},
}

// objectiveMarkers flag sentences that describe learning goals
var objectiveMarkers = []string{
	"students will",
	"you will",
	"objective",
	"learning outcome",
	"by the end of this",
	"upon completion",
	"learn to",
	"understand",
	"be able to",
}

var (
	sentencePattern  = regexp.MustCompile(`[^.!?]+[.!?]*`)
	paragraphPattern = regexp.MustCompile(`\n\s*\n`)
	listPattern      = regexp.MustCompile(`(?m)^\s*[-•*]\s`)
	numberingPattern = regexp.MustCompile(`(?m)^\s*\d+[.)]\s`)
)

// normalizeTokens lowercases the text, strips punctuation except
// internal hyphens, and splits it into tokens
func normalizeTokens(text string) []string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, text)

	fields := strings.Fields(mapped)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// splitSentences splits text on sentence-ending punctuation, keeping
// the punctuation attached
func splitSentences(text string) []string {
	raw := sentencePattern.FindAllString(text, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// splitParagraphs splits text into blank-line-delimited paragraphs
func splitParagraphs(text string) []string {
	raw := paragraphPattern.Split(text, -1)
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, strings.TrimSpace(p))
		}
	}
	return paragraphs
}

// isNumericToken reports whether a token is purely numeric
// (digits, optionally hyphen-separated, e.g. "2024" or "10-15")
func isNumericToken(token string) bool {
	hasDigit := false
	for _, r := range token {
		if r >= '0' && r <= '9' {
			hasDigit = true
			continue
		}
		if r != '-' {
			return false
		}
	}
	return hasDigit
}

// isAllCaps checks if a string is all uppercase (ignoring digits and
// punctuation)
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// isTitleCase checks if most words of a string start with an
// uppercase letter
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}

	titleCount := 0
	for _, word := range words {
		first := rune(word[0])
		if first >= 'A' && first <= 'Z' {
			titleCount++
		}
	}

	return float64(titleCount)/float64(len(words)) > 0.7
}

// isHeadingLine applies the section-heading heuristic: a markdown
// heading, or a short all-caps / title-case line
func isHeadingLine(line string) bool {
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "#") {
		return true
	}
	return len(line) < 60 && (isAllCaps(line) || isTitleCase(line))
}

// containsAny reports whether s contains any of the markers
func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
