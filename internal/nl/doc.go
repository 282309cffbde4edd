// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nl translates plain-English instructions into shell command vectors.
//
// A sentence is split into clauses on "and", "then", "and then" and ";".
// Each clause is matched against an ordered rule list; the first rule that
// matches wins. Clauses no rule matches are passed through as literal
// commands, so "echo hi" still reaches the dispatcher.
//
// The translator is a pattern matcher, not a parser. It never returns an
// error; callers treat an empty Plan as "could not parse".
//
// # Usage
//
//	plan := nl.New().Translate("create a folder demo and then go to demo")
//	// plan == nl.Plan{{"mkdir", "demo"}, {"cd", "demo"}}
package nl
