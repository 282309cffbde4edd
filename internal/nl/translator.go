// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nl

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/fsh/internal/util"
)

// Plan is an ordered list of command vectors.
type Plan [][]string

// String renders the plan as shell-quoted commands joined by " ; ".
func (p Plan) String() string {
	parts := make([]string, len(p))
	for i, vec := range p {
		parts[i] = Join(vec)
	}
	return strings.Join(parts, " ; ")
}

// clauseSplit separates connector phrases. "and then" must precede "and".
var clauseSplit = regexp.MustCompile(`(?i)\s*;\s*|\b(?:and\s+then|then|and)\b`)

// pronouns that refer back to the last directory named in the sentence.
var pronouns = map[string]bool{
	"it":    true,
	"there": true,
}

// Translator turns sentences into plans using an ordered rule set.
type Translator struct {
	rules []Rule
}

// New creates a Translator with the default rules.
func New() *Translator {
	return &Translator{rules: Rules()}
}

// NewWithRules creates a Translator with a custom rule order.
func NewWithRules(rules []Rule) *Translator {
	return &Translator{rules: rules}
}

// Translate splits a sentence into clauses and maps each to one vector.
// It never fails: unmatched clauses pass through as literal commands and
// empty input yields an empty plan.
func (t *Translator) Translate(sentence string) Plan {
	text := strings.TrimSpace(norm.NFC.String(sentence))
	if text == "" {
		return nil
	}

	var plan Plan
	lastDir := ""
	for _, raw := range clauseSplit.Split(text, -1) {
		clause := strings.TrimSpace(raw)
		if clause == "" {
			continue
		}
		vec, _ := t.Match(clause)
		if len(vec) == 0 {
			continue
		}
		vec = resolvePronoun(vec, lastDir)
		switch vec[0] {
		case "mkdir", "cd":
			lastDir = vec[len(vec)-1]
		}
		plan = append(plan, vec)
	}
	return plan
}

// Match runs one clause through the rules and returns the vector and the
// name of the rule that produced it ("" for the literal fallback).
func (t *Translator) Match(clause string) ([]string, string) {
	for _, r := range t.rules {
		m := r.Pattern.FindStringSubmatch(clause)
		if m == nil {
			continue
		}
		if vec := r.Build(clause, m); vec != nil {
			return vec, r.Name
		}
	}
	return literal(clause), ""
}

// literal splits an unmatched clause with shell quoting, falling back to
// whitespace when the quoting is unbalanced or an operator such as & would
// cut the clause short.
func literal(clause string) []string {
	words, err := util.SplitWords(clause)
	if err != nil {
		return strings.Fields(clause)
	}
	return words
}

// resolvePronoun replaces a trailing "it"/"there" in mv, cp and cd with the
// last directory the sentence created or entered.
func resolvePronoun(vec []string, lastDir string) []string {
	if lastDir == "" || len(vec) < 2 {
		return vec
	}
	switch vec[0] {
	case "mv", "cp", "cd":
	default:
		return vec
	}
	last := len(vec) - 1
	if !pronouns[strings.ToLower(vec[last])] {
		return vec
	}
	out := append([]string(nil), vec...)
	out[last] = lastDir
	if vec[0] != "cd" && !strings.HasSuffix(lastDir, "/") {
		out[last] += "/"
	}
	return out
}
