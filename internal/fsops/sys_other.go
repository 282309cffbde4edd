// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !unix

package fsops

import "github.com/spf13/afero"

func linkCount(_ afero.Fs, _ string) uint64 {
	return 1
}

func isCrossDevice(_ error) bool {
	return false
}
