// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
)

func TestThumbExtent(t *testing.T) {
	cases := []struct {
		name     string
		height   int
		total    int
		window   int
		offset   int
		wantTop  int
		wantSize int
	}{
		{"everything visible", 10, 8, 15, 0, 0, 10},
		{"empty list", 10, 0, 15, 0, 0, 10},
		{"top of two pages", 10, 30, 15, 0, 0, 5},
		{"bottom of two pages", 10, 30, 15, 15, 5, 5},
		{"tiny window floors at one row", 4, 400, 15, 0, 0, 1},
		{"deep scroll clamps to track", 4, 400, 15, 385, 3, 1},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			top, size := thumbExtent(testCase.height, testCase.total, testCase.window, testCase.offset)
			if top != testCase.wantTop || size != testCase.wantSize {
				t.Errorf("thumbExtent = (%d, %d), want (%d, %d)",
					top, size, testCase.wantTop, testCase.wantSize)
			}
		})
	}
}

func TestRenderScrollbarHeight(t *testing.T) {
	column := RenderScrollbar(DefaultTheme, 12, 45, 15, 0, true)
	if got := len(strings.Split(column, "\n")); got != 12 {
		t.Errorf("scrollbar spans %d rows, want 12", got)
	}
	if RenderScrollbar(DefaultTheme, 0, 45, 15, 0, false) != "" {
		t.Error("zero-height scrollbar rendered output")
	}
}
