// Package notation normalizes numpad combo notation such as "2 弱P > 236 強P".
package notation

import (
	"regexp"
	"strings"
)

// Transition separates the steps of a combo.
const Transition = ">"

// EmptyStarter is returned by Starter when nothing precedes the first transition.
const EmptyStarter = "-"

// metaTokens never absorb a preceding direction.
var metaTokens = map[string]struct{}{
	">":   {},
	"CR":  {},
	"DR":  {},
	"DI":  {},
	"OD":  {},
	"SA":  {},
	"SA1": {},
	"SA2": {},
	"SA3": {},
	"J":   {},
	"A":   {},
}

var digitThenRest = regexp.MustCompile(`^(\d+)(\D.+)$`)

// IsMeta reports whether tok is a transition or system-mechanic token.
func IsMeta(tok string) bool {
	_, ok := metaTokens[tok]
	return ok
}

// MetaTokens returns the meta token set.
func MetaTokens() []string {
	out := make([]string, 0, len(metaTokens))
	for k := range metaTokens {
		out = append(out, k)
	}
	return out
}

func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

// Tokenize splits s on runs of whitespace.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Merge joins every direction token with the token after it unless that token is meta.
// ["2", "弱P", ">", "2", "DR"] becomes ["2弱P", ">", "2", "DR"].
func Merge(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		cur := tokens[i]
		if isDigits(cur) && i+1 < len(tokens) && !IsMeta(tokens[i+1]) {
			out = append(out, cur+tokens[i+1])
			i++
			continue
		}
		out = append(out, cur)
	}
	return out
}

// Normalize tokenizes and merges s.
func Normalize(s string) []string {
	return Merge(Tokenize(s))
}

// Starter returns the merged opening move, i.e. everything before the first ">".
func Starter(comboText string) string {
	before, _, _ := strings.Cut(comboText, Transition)
	starter := strings.Join(Merge(Tokenize(before)), "")
	if starter == "" {
		return EmptyStarter
	}
	return starter
}

// NoSpace removes all whitespace from s.
func NoSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// QueryVariants expands a search keyword into the spellings people commonly use for the
// same input: "236弱P" yields ["236弱P", "236 弱P", "2 3 6 弱P"]. The result is deduplicated
// and keeps first-seen order.
func QueryVariants(q string) []string {
	raw := strings.TrimSpace(q)
	if raw == "" {
		return []string{}
	}

	noSpace := NoSpace(raw)
	candidates := []string{raw, noSpace}

	if m := digitThenRest.FindStringSubmatch(noSpace); m != nil {
		digits, rest := m[1], m[2]
		candidates = append(candidates, digits+" "+rest)
		candidates = append(candidates, strings.Join(strings.Split(digits, ""), " ")+" "+rest)
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
