// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/helpdesk/lib/tui"
)

// messageParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share — parsing creates per-call state via Parse(reader).
var (
	messageParserInstance goldmark.Markdown
	messageParserOnce     sync.Once
)

func getMessageParser() goldmark.Markdown {
	messageParserOnce.Do(func() {
		messageParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return messageParserInstance
}

// renderMessageBody renders a chat message's markdown as styled
// terminal text wrapped to the bubble width. Customers paste markdown
// from the web widget; plain text comes through as a single paragraph
// unchanged. Soft line breaks reflow; fenced code blocks keep their
// formatting and get chroma highlighting.
func renderMessageBody(input string, theme tui.Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := getMessageParser().Parser().Parse(text.NewReader(source))

	// Force ANSI256: output is always for the bubbletea display, so
	// auto-detection (which sees no TTY under tests) must not strip
	// the colors.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &messageRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// messageRenderer walks a goldmark AST and accumulates styled terminal
// text. Inline content collects in a buffer and is word-wrapped as a
// unit when its containing block closes; block structure (code fences,
// lists, quotes) bypasses the wrap.
type messageRenderer struct {
	source []byte
	theme  tui.Theme
	width  int

	output strings.Builder
	inline strings.Builder

	boldCount   int
	italicCount int

	quoteDepth  int
	listDepth   int
	listCounter []int // per-depth ordered-list counters; 0 = unordered

	lipRenderer *lipgloss.Renderer
}

func (renderer *messageRenderer) newStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

// blockPrefix is the leading decoration for the current nesting:
// blockquote bars then list indentation.
func (renderer *messageRenderer) blockPrefix() string {
	prefix := strings.Repeat("│ ", renderer.quoteDepth)
	if renderer.listDepth > 0 {
		prefix += strings.Repeat("  ", renderer.listDepth-1)
	}
	return prefix
}

// contentWidth is the wrap width after the block prefix, clamped so
// degenerate bubble widths still produce readable output.
func (renderer *messageRenderer) contentWidth() int {
	width := renderer.width - ansi.StringWidth(renderer.blockPrefix())
	if width < 10 {
		width = 10
	}
	return width
}

// flushInline word-wraps the accumulated inline content and emits it
// with the current block prefix, optionally preceded by a bullet on
// the first line.
func (renderer *messageRenderer) flushInline(bullet string) {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" && bullet == "" {
		return
	}

	wrapped := ansi.Wordwrap(content, renderer.contentWidth(), "")
	prefix := renderer.blockPrefix()
	for index, line := range strings.Split(wrapped, "\n") {
		if index == 0 && bullet != "" {
			renderer.output.WriteString(prefix + bullet + line + "\n")
			continue
		}
		if bullet != "" {
			renderer.output.WriteString(prefix + strings.Repeat(" ", ansi.StringWidth(bullet)) + line + "\n")
			continue
		}
		renderer.output.WriteString(prefix + line + "\n")
	}
}

// inlineStyle is the style for the current emphasis nesting.
func (renderer *messageRenderer) inlineStyle() lipgloss.Style {
	style := renderer.newStyle().Foreground(renderer.theme.NormalText)
	if renderer.boldCount > 0 {
		style = style.Bold(true)
	}
	if renderer.italicCount > 0 {
		style = style.Italic(true)
	}
	return style
}

// highlightCode runs chroma over a fenced code block. An unknown
// language falls back to chroma's analyzer; a highlight failure falls
// back to faint-styled plain text.
func (renderer *messageRenderer) highlightCode(code, language string) string {
	var highlighted strings.Builder
	err := quick.Highlight(&highlighted, code, language, "terminal256", "monokai")
	if err != nil {
		return renderer.newStyle().Foreground(renderer.theme.FaintText).Render(code)
	}
	return strings.TrimRight(highlighted.String(), "\n")
}

func (renderer *messageRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch typed := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			bullet := ""
			if _, ok := node.Parent().(*ast.ListItem); ok && node.PreviousSibling() == nil {
				bullet = renderer.bulletFor()
			}
			renderer.flushInline(bullet)
			if _, isParagraph := node.(*ast.Paragraph); isParagraph && renderer.listDepth == 0 {
				renderer.output.WriteString("\n")
			}
		}

	case *ast.Heading:
		if entering {
			renderer.boldCount++
		} else {
			renderer.boldCount--
			renderer.flushInline("")
			renderer.output.WriteString("\n")
		}

	case *ast.Text:
		if entering {
			segment := typed.Segment.Value(renderer.source)
			renderer.inline.WriteString(renderer.inlineStyle().Render(string(segment)))
			if typed.HardLineBreak() {
				renderer.inline.WriteString("\n")
			} else if typed.SoftLineBreak() {
				// Reflow hard-wrapped source at the bubble width.
				renderer.inline.WriteString(" ")
			}
		}

	case *ast.Emphasis:
		if typed.Level >= 2 {
			if entering {
				renderer.boldCount++
			} else {
				renderer.boldCount--
			}
		} else {
			if entering {
				renderer.italicCount++
			} else {
				renderer.italicCount--
			}
		}

	case *ast.CodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(renderer.source))
				}
			}
			styled := renderer.newStyle().
				Foreground(renderer.theme.StatusPending).
				Render(code.String())
			renderer.inline.WriteString(styled)
			return ast.WalkSkipChildren, nil
		}

	case *ast.Link:
		if !entering {
			styled := renderer.newStyle().
				Foreground(renderer.theme.LinkForeground).
				Render(" (" + string(typed.Destination) + ")")
			renderer.inline.WriteString(styled)
		}

	case *ast.AutoLink:
		if entering {
			styled := renderer.newStyle().
				Foreground(renderer.theme.LinkForeground).
				Render(string(typed.URL(renderer.source)))
			renderer.inline.WriteString(styled)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			var code strings.Builder
			lines := node.Lines()
			for index := 0; index < lines.Len(); index++ {
				segment := lines.At(index)
				code.Write(segment.Value(renderer.source))
			}
			language := ""
			if fenced, ok := node.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
				language = string(fenced.Info.Segment.Value(renderer.source))
			}
			prefix := renderer.blockPrefix()
			highlighted := renderer.highlightCode(strings.TrimRight(code.String(), "\n"), language)
			for _, line := range strings.Split(highlighted, "\n") {
				renderer.output.WriteString(prefix + line + "\n")
			}
			renderer.output.WriteString("\n")
			return ast.WalkSkipChildren, nil
		}

	case *ast.Blockquote:
		if entering {
			renderer.quoteDepth++
		} else {
			renderer.quoteDepth--
		}

	case *ast.List:
		if entering {
			renderer.listDepth++
			counter := 0
			if typed.IsOrdered() {
				counter = typed.Start
				if counter == 0 {
					counter = 1
				}
			}
			renderer.listCounter = append(renderer.listCounter, counter)
		} else {
			renderer.listDepth--
			renderer.listCounter = renderer.listCounter[:len(renderer.listCounter)-1]
			if renderer.listDepth == 0 {
				renderer.output.WriteString("\n")
			}
		}

	case *ast.ThematicBreak:
		if entering {
			rule := strings.Repeat("─", renderer.contentWidth())
			renderer.output.WriteString(renderer.newStyle().
				Foreground(renderer.theme.BorderColor).Render(rule) + "\n\n")
		}
	}

	return ast.WalkContinue, nil
}

// bulletFor renders the marker for a list item and advances the
// ordered counter.
func (renderer *messageRenderer) bulletFor() string {
	if len(renderer.listCounter) == 0 {
		return "• "
	}
	counter := renderer.listCounter[len(renderer.listCounter)-1]
	if counter == 0 {
		return "• "
	}
	renderer.listCounter[len(renderer.listCounter)-1]++
	return fmt.Sprintf("%d. ", counter)
}
