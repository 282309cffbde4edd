// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nl

import (
	"regexp"
	"strings"
)

// Rule matches one clause shape and builds the command vector for it.
// Build receives the submatches of Pattern against the clause (original
// casing) and returns nil to decline the clause.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Build   func(clause string, m []string) []string
}

// Rule names, in evaluation order.
const (
	RuleMkdir  = "mkdir"
	RuleTouch  = "touch"
	RuleMove   = "move"
	RuleCopy   = "copy"
	RuleDelete = "delete"
	RuleCd     = "cd"
	RuleList   = "list"
	RuleListIn = "list-in"
	RulePwd    = "pwd"
)

var (
	dirWord     = regexp.MustCompile(`(?i)\b(?:folder|directory|dir)\b`)
	recursiveRe = regexp.MustCompile(`(?i)recurs|\b(?:folder|directory|dir)\b`)
)

// deleteFiller are words dropped from either end of a delete target.
var deleteFiller = map[string]bool{
	"the":         true,
	"a":           true,
	"folder":      true,
	"directory":   true,
	"dir":         true,
	"file":        true,
	"recursively": true,
}

// defaultRules is the fixed priority order. Reordering changes which rule
// claims ambiguous clauses such as "create a folder x" (mkdir, not touch).
var defaultRules = []Rule{
	{
		Name:    RuleMkdir,
		Pattern: regexp.MustCompile(`(?i)\b(?:create|make)\s+(?:a\s+|new\s+|a\s+new\s+)?(?:folder|directory|dir)\s+(?:(?:called|named)\s+)?(.+)$`),
		Build: func(_ string, m []string) []string {
			return []string{"mkdir", unquote(m[1])}
		},
	},
	{
		Name:    RuleTouch,
		Pattern: regexp.MustCompile(`(?i)\b(?:create|make|touch)\s+(?:a\s+|new\s+|a\s+new\s+)?(?:file\s+)?(?:(?:called|named)\s+)?(.+)$`),
		Build: func(clause string, m []string) []string {
			if dirWord.MatchString(clause) {
				return nil
			}
			return []string{"touch", unquote(m[1])}
		},
	},
	{
		Name:    RuleMove,
		Pattern: regexp.MustCompile(`(?i)\bmove\s+(.+?)\s+(?:into|to|inside)\s+(.+)$`),
		Build: func(_ string, m []string) []string {
			return []string{"mv", unquote(m[1]), unquote(m[2])}
		},
	},
	{
		Name:    RuleCopy,
		Pattern: regexp.MustCompile(`(?i)\bcopy\s+(.+?)\s+(?:into|to)\s+(.+)$`),
		Build: func(_ string, m []string) []string {
			return []string{"cp", unquote(m[1]), unquote(m[2])}
		},
	},
	{
		Name:    RuleDelete,
		Pattern: regexp.MustCompile(`(?i)\b(?:delete|remove|rm)\s+(.+)$`),
		Build: func(clause string, m []string) []string {
			target := trimFiller(unquote(m[1]))
			if recursiveRe.MatchString(clause) {
				return []string{"rm", "-r", target}
			}
			return []string{"rm", target}
		},
	},
	{
		Name:    RuleCd,
		Pattern: regexp.MustCompile(`(?i)\b(?:go\s+(?:in)?to|goto|open|enter|cd)\s+(.+)$`),
		Build: func(_ string, m []string) []string {
			return []string{"cd", unquote(m[1])}
		},
	},
	{
		Name:    RuleList,
		Pattern: regexp.MustCompile(`(?i)^(?:list(?:\s+files)?|show\s+files|ls)$`),
		Build: func(string, []string) []string {
			return []string{"ls"}
		},
	},
	{
		Name:    RuleListIn,
		Pattern: regexp.MustCompile(`(?i)\b(?:list|show)\s+(?:files\s+)?in\s+(.+)$`),
		Build: func(_ string, m []string) []string {
			return []string{"ls", unquote(m[1])}
		},
	},
	{
		Name:    RulePwd,
		Pattern: regexp.MustCompile(`(?i)\b(?:where\s+am\s+i|current\s+(?:dir|directory|folder)|pwd)\b`),
		Build: func(string, []string) []string {
			return []string{"pwd"}
		},
	},
}

// Rules returns a copy of the rule set in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// RuleNames lists rule names in evaluation order.
func RuleNames() []string {
	names := make([]string, len(defaultRules))
	for i, r := range defaultRules {
		names[i] = r.Name
	}
	return names
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

// trimFiller drops filler words from both ends of a target. A target made
// only of filler is returned unchanged.
func trimFiller(target string) string {
	words := strings.Fields(target)
	start, end := 0, len(words)
	for start < end && deleteFiller[strings.ToLower(words[start])] {
		start++
	}
	for end > start && deleteFiller[strings.ToLower(words[end-1])] {
		end--
	}
	if start == end {
		return target
	}
	return strings.Join(words[start:end], " ")
}
