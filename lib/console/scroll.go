// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

// bottomSlackRows is how close to the bottom of the chat viewport the
// agent must be for new messages to pull the view down. One row of
// slack absorbs rounding from wrapped bubbles.
const bottomSlackRows = 1

// scrollBaseline is the per-ticket bookkeeping the controller keeps
// between renders.
type scrollBaseline struct {
	messageCount  int
	contentHeight int
}

// ScrollController decides, on every chat update, whether the viewport
// should snap to the newest message. The rule: the first render of a
// ticket always lands at the bottom; afterwards new messages tail the
// view only when the agent was already at (or within a row of) the
// bottom, so scrolling up to read history is never yanked away.
//
// Baselines are keyed by ticket id and survive switching tickets, so
// reopening a ticket behaves like a fresh open only after Forget.
type ScrollController struct {
	baselines map[int64]scrollBaseline
}

// NewScrollController returns a controller with no baselines.
func NewScrollController() *ScrollController {
	return &ScrollController{baselines: make(map[int64]scrollBaseline)}
}

// Decide reports whether the chat viewport should snap to the bottom,
// given the ticket being rendered, its current message count, the
// rendered content height in rows, and the viewport's scroll offset
// and visible height. The baseline is persisted after every decision.
func (controller *ScrollController) Decide(ticketID int64, messageCount, contentHeight, scrollOffset, viewportHeight int) bool {
	baseline, seen := controller.baselines[ticketID]
	controller.baselines[ticketID] = scrollBaseline{
		messageCount:  messageCount,
		contentHeight: contentHeight,
	}

	// First render of this ticket: always land at the latest message.
	if !seen {
		return true
	}

	wasAtBottom := baseline.contentHeight-scrollOffset <= viewportHeight+bottomSlackRows
	hasGrown := messageCount > baseline.messageCount

	if baseline.messageCount == 0 && messageCount > 0 {
		return true
	}
	return hasGrown && wasAtBottom
}

// Forget drops the baseline for a ticket. Called on deselection so the
// next open snaps to the bottom again.
func (controller *ScrollController) Forget(ticketID int64) {
	delete(controller.baselines, ticketID)
}
