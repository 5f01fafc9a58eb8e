// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

// Package strreplace performs many string replacements in a single pass.
//
// Given a [Table] of (old, new) rules,
// [Replace] scans the input once and at each position
// replaces the longest matching old string.
// Replaced text is never scanned again,
// so rules cannot cascade into one another.
//
//	s, n := strreplace.Replace("$who says $what", strreplace.Pairs(
//		"$who", "Bob",
//		"$what", "hello",
//	))
//	// s == "Bob says hello", n == 2
package strreplace
