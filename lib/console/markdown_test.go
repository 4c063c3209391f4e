// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/helpdesk/lib/tui"
)

func renderPlain(input string, width int) string {
	return ansi.Strip(renderMessageBody(input, tui.DefaultTheme, width))
}

func TestRenderMessagePlainText(t *testing.T) {
	got := renderPlain("the printer on floor 3 is jammed", 60)
	if got != "the printer on floor 3 is jammed" {
		t.Errorf("plain text mangled: %q", got)
	}
}

func TestRenderMessageEmpty(t *testing.T) {
	if got := renderMessageBody("   \n ", tui.DefaultTheme, 60); got != "" {
		t.Errorf("whitespace body rendered %q", got)
	}
}

func TestRenderMessageSoftBreakReflows(t *testing.T) {
	// A hard-wrapped paragraph in the source reflows to the bubble
	// width instead of keeping the original line breaks.
	got := renderPlain("first part\nsecond part", 60)
	if got != "first part second part" {
		t.Errorf("soft break not reflowed: %q", got)
	}
}

func TestRenderMessageWraps(t *testing.T) {
	got := renderPlain("alpha beta gamma delta epsilon", 12)
	for lineNumber, line := range strings.Split(got, "\n") {
		if ansi.StringWidth(line) > 12 {
			t.Errorf("line %d exceeds wrap width: %q", lineNumber, line)
		}
	}
}

func TestRenderMessageCodeFence(t *testing.T) {
	input := "restart it:\n\n```bash\nsystemctl restart cups\n```\n"
	got := renderPlain(input, 60)
	if !strings.Contains(got, "systemctl restart cups") {
		t.Errorf("code fence content missing: %q", got)
	}
}

func TestRenderMessageList(t *testing.T) {
	got := renderPlain("- check the tray\n- check the toner", 60)
	if !strings.Contains(got, "• check the tray") || !strings.Contains(got, "• check the toner") {
		t.Errorf("list bullets missing: %q", got)
	}

	ordered := renderPlain("1. unplug\n2. wait\n3. replug", 60)
	for _, want := range []string{"1. unplug", "2. wait", "3. replug"} {
		if !strings.Contains(ordered, want) {
			t.Errorf("ordered item %q missing: %q", want, ordered)
		}
	}
}

func TestRenderMessageBlockquote(t *testing.T) {
	got := renderPlain("> original request", 60)
	if !strings.Contains(got, "│ original request") {
		t.Errorf("blockquote bar missing: %q", got)
	}
}
