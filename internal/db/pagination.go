// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

const defaultPageSize uint64 = 100

// Offset converts a 1-based page parameter into a row offset.
func Offset(pageParam int64, pageSize uint64) uint64 {
	if pageParam < 1 {
		pageParam = 1
	}

	return uint64(pageParam-1) * pageSize
}

// PageSize sanitizes a caller-supplied page size.
func PageSize(sizeParam int64) uint64 {
	if sizeParam < 1 {
		return defaultPageSize
	}

	return uint64(sizeParam)
}
