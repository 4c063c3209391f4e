// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar draws the one-column scrollbar beside the ticket
// list: a thumb over a track, sized and placed proportionally to the
// revealed window within the filtered rows. When the window covers
// everything the thumb spans the full height. The thumb takes the
// pending-status accent while the owning pane has focus and the dim
// border color otherwise.
func RenderScrollbar(theme Theme, height, total, window, offset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.StatusPending
	}
	thumb := lipgloss.NewStyle().Foreground(thumbColor).Render("┃")
	track := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")

	top, size := thumbExtent(height, total, window, offset)

	var column strings.Builder
	for row := 0; row < height; row++ {
		if row > 0 {
			column.WriteByte('\n')
		}
		if row >= top && row < top+size {
			column.WriteString(thumb)
		} else {
			column.WriteString(track)
		}
	}
	return column.String()
}

// thumbExtent maps a window of `window` rows into `total` rows at
// scroll `offset` onto a track of `height` rows. The thumb is never
// smaller than one row and never extends past the track.
func thumbExtent(height, total, window, offset int) (top, size int) {
	if total <= window || total <= 0 {
		return 0, height
	}

	size = height * window / total
	if size < 1 {
		size = 1
	}

	span := height - size
	hidden := total - window
	if span > 0 && hidden > 0 {
		top = offset * span / hidden
	}
	if top+size > height {
		top = height - size
	}
	return top, size
}
