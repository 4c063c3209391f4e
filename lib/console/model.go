// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/helpdesk/lib/clock"
	"github.com/bureau-foundation/helpdesk/lib/helpdesk"
	"github.com/bureau-foundation/helpdesk/lib/ticket"
	"github.com/bureau-foundation/helpdesk/lib/tui"
)

// pageAdvanceDelay is the artificial debounce between noticing the
// agent near the bottom of the list and revealing the next page,
// preventing runaway page advances during fast scrolling.
const pageAdvanceDelay = 300 * time.Millisecond

// pageAdvanceThresholdRows is how close to the last visible row the
// cursor must be to trigger a page advance.
const pageAdvanceThresholdRows = 3

// toastFadeDelay is how long success notices stay in the status bar.
const toastFadeDelay = 4 * time.Second

// listPaneFraction is the share of the terminal width given to the
// ticket list; the chat pane takes the rest.
const listPaneFraction = 0.44

// paneFocus identifies which pane receives navigation keys.
type paneFocus int

const (
	focusList paneFocus = iota
	focusChat
)

// Messages delivered to the update loop.

type listTickMsg struct{}

type listFetchedMsg struct {
	summaries  []ticket.Summary
	background bool
	err        error
}

type detailTickMsg struct {
	generation int
}

type detailFetchedMsg struct {
	detail     ticket.Detail
	ticketID   int64
	generation int
	polling    bool
	err        error
}

type pageAdvanceMsg struct{}

type statusCommittedMsg struct {
	generation int
	err        error
}

type messageSentMsg struct {
	generation  int
	restoreText string
	err         error
}

type complaintCreatedMsg struct {
	ticketID    int64
	complaintID string
	category    string
	err         error
}

type toastFadeMsg struct{}

// Options configures a console Model.
type Options struct {
	Client              *helpdesk.Client
	Clock               clock.Clock
	Logger              *slog.Logger
	Theme               tui.Theme
	Keys                KeyMap
	ListPollInterval    time.Duration
	DetailPollInterval  time.Duration
	Bell                bool
	ComplaintReportBase string
}

// Model is the bubbletea model for the console. All engine state is
// mutated exclusively in Update; commands only perform network calls
// and deliver result messages.
type Model struct {
	client     *helpdesk.Client
	timeSource clock.Clock
	logger     *slog.Logger
	theme      tui.Theme
	keys       KeyMap

	store   *Store
	syncer  *Synchronizer
	scroll  *ScrollController
	tracker *Tracker

	listPollInterval   time.Duration
	detailPollInterval time.Duration
	bellEnabled        bool
	complaintBase      string

	width  int
	height int
	focus  paneFocus

	cursor     int // index into store.Visible()
	listOffset int // first visible row in the list window

	filterActive bool
	filterInput  textinput.Model

	chatViewport viewport.Model
	replyInput   textinput.Model

	statusModal    *statusModal
	complaintModal *complaintModal
	statusDropdown *tui.DropdownOverlay

	banner        string // dismissible foreground error
	statusMessage string // faded slog record
	statusLevel   slog.Level
	toast         string

	authFailed bool
	quitting   bool
}

// New builds a console model. The zero values of Options fall back to
// the real clock, the default theme and key map, and 5-second polls.
func New(options Options) *Model {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.ListPollInterval <= 0 {
		options.ListPollInterval = 5 * time.Second
	}
	if options.DetailPollInterval <= 0 {
		options.DetailPollInterval = 5 * time.Second
	}
	emptyTheme := tui.Theme{}
	if options.Theme == emptyTheme {
		options.Theme = tui.DefaultTheme
	}
	if len(options.Keys.Quit.Keys()) == 0 {
		options.Keys = DefaultKeyMap
	}

	filterInput := textinput.New()
	filterInput.Placeholder = "filter by ticket code"
	filterInput.Prompt = "/ "
	filterInput.CharLimit = 64

	replyInput := textinput.New()
	replyInput.Placeholder = "type a reply…"
	replyInput.Prompt = "> "
	replyInput.CharLimit = 0

	return &Model{
		client:             options.Client,
		timeSource:         options.Clock,
		logger:             options.Logger,
		theme:              options.Theme,
		keys:               options.Keys,
		store:              NewStore(),
		syncer:             NewSynchronizer(options.Clock, options.Client.AgentName()),
		scroll:             NewScrollController(),
		tracker:            NewTracker(),
		listPollInterval:   options.ListPollInterval,
		detailPollInterval: options.DetailPollInterval,
		bellEnabled:        options.Bell,
		complaintBase:      options.ComplaintReportBase,
		filterInput:        filterInput,
		replyInput:         replyInput,
		chatViewport:       viewport.New(0, 0),
	}
}

// AuthFailed reports whether the session was rejected; the caller
// clears the saved session and prints a login hint after Run returns.
func (model *Model) AuthFailed() bool {
	return model.authFailed
}

// Init issues the initial foreground list fetch and starts the list
// poll timer.
func (model *Model) Init() tea.Cmd {
	model.store.SetRefreshing(true)
	return tea.Batch(model.fetchListCmd(false), model.listTickCmd())
}

// Commands.

func (model *Model) fetchListCmd(background bool) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		summaries, err := client.ListTickets(context.Background())
		return listFetchedMsg{summaries: summaries, background: background, err: err}
	}
}

func (model *Model) listTickCmd() tea.Cmd {
	wait := model.timeSource.After(model.listPollInterval)
	return func() tea.Msg {
		<-wait
		return listTickMsg{}
	}
}

func (model *Model) fetchDetailCmd(ticketID int64, generation int, polling bool) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		detail, err := client.GetTicket(context.Background(), ticketID)
		return detailFetchedMsg{
			detail:     detail,
			ticketID:   ticketID,
			generation: generation,
			polling:    polling,
			err:        err,
		}
	}
}

func (model *Model) detailTickCmd(generation int) tea.Cmd {
	wait := model.timeSource.After(model.detailPollInterval)
	return func() tea.Msg {
		<-wait
		return detailTickMsg{generation: generation}
	}
}

func (model *Model) pageAdvanceCmd() tea.Cmd {
	wait := model.timeSource.After(pageAdvanceDelay)
	return func() tea.Msg {
		<-wait
		return pageAdvanceMsg{}
	}
}

func (model *Model) updateStatusCmd(transition StatusTransition, note string, generation int) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		err := client.UpdateStatus(context.Background(), transition.TicketID, transition.NextWire, note)
		return statusCommittedMsg{generation: generation, err: err}
	}
}

func (model *Model) sendMessageCmd(ticketID int64, text string, generation int) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		err := client.SendMessage(context.Background(), ticketID, text)
		return messageSentMsg{generation: generation, restoreText: text, err: err}
	}
}

func (model *Model) createComplaintCmd(ticketID int64, request helpdesk.ComplaintRequest, category string) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		complaintID, err := client.CreateComplaint(context.Background(), request)
		return complaintCreatedMsg{
			ticketID:    ticketID,
			complaintID: complaintID,
			category:    category,
			err:         err,
		}
	}
}

func (model *Model) toastFadeCmd() tea.Cmd {
	wait := model.timeSource.After(toastFadeDelay)
	return func() tea.Msg {
		<-wait
		return toastFadeMsg{}
	}
}

func (model *Model) logFadeCmd() tea.Cmd {
	wait := model.timeSource.After(logRecordFadeDelay)
	return func() tea.Msg {
		<-wait
		return logRecordFadeMsg{}
	}
}

// failAuth marks the session as rejected and quits. The gateway has
// already fired its OnAuthRequired callback exactly once.
func (model *Model) failAuth() (tea.Model, tea.Cmd) {
	model.authFailed = true
	model.quitting = true
	return model, tea.Quit
}

// Update is the single mutation point for all engine state.
func (model *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := message.(type) {
	case tea.WindowSizeMsg:
		model.resize(typed.Width, typed.Height)
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(typed)

	case listTickMsg:
		if model.quitting {
			return model, nil
		}
		// Wall-clock interval: re-arm immediately; a slow fetch delays
		// only its own application.
		return model, tea.Batch(model.fetchListCmd(true), model.listTickCmd())

	case listFetchedMsg:
		return model.handleListFetched(typed)

	case detailTickMsg:
		if model.quitting || !model.syncer.Current(typed.generation) {
			return model, nil
		}
		return model, tea.Batch(
			model.fetchDetailCmd(model.syncer.SelectedID(), typed.generation, true),
			model.detailTickCmd(typed.generation),
		)

	case detailFetchedMsg:
		return model.handleDetailFetched(typed)

	case pageAdvanceMsg:
		model.store.FinishAdvance()
		return model, nil

	case statusCommittedMsg:
		return model.handleStatusCommitted(typed)

	case messageSentMsg:
		return model.handleMessageSent(typed)

	case complaintCreatedMsg:
		return model.handleComplaintCreated(typed)

	case logRecordMsg:
		model.statusMessage = typed.Summary
		model.statusLevel = typed.Level
		return model, model.logFadeCmd()

	case logRecordFadeMsg:
		model.statusMessage = ""
		return model, nil

	case toastFadeMsg:
		model.toast = ""
		return model, nil
	}

	return model, nil
}

func (model *Model) resize(width, height int) {
	model.width = width
	model.height = height

	listWidth := model.listWidth()
	model.filterInput.Width = listWidth - 6

	chatWidth := width - listWidth - 1
	// Chat pane rows: header 3-4, input 1, status bar 1.
	model.chatViewport.Width = chatWidth
	model.chatViewport.Height = height - 6
	model.replyInput.Width = chatWidth - 4
	model.refreshChatContent()
}

func (model *Model) listWidth() int {
	listWidth := int(float64(model.width) * listPaneFraction)
	if listWidth < 40 {
		listWidth = 40
	}
	if listWidth > model.width-20 {
		listWidth = model.width - 20
	}
	return listWidth
}

// listRowCapacity is how many ticket rows fit in the list pane.
func (model *Model) listRowCapacity() int {
	// Chrome: filter line, status-filter line, footer, status bar.
	capacity := model.height - 4
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

func (model *Model) handleListFetched(message listFetchedMsg) (tea.Model, tea.Cmd) {
	model.store.SetRefreshing(false)

	if message.err != nil {
		var authErr *helpdesk.AuthRequiredError
		if errors.As(message.err, &authErr) {
			return model.failAuth()
		}
		if message.background {
			model.logger.Warn("ticket list poll failed", "error", message.err)
		} else {
			model.banner = fmt.Sprintf("failed to load tickets: %v", message.err)
		}
		return model, nil
	}

	report := model.store.ApplyRefresh(message.summaries)

	var commands []tea.Cmd
	// The bell never rings for the initial backlog, and at most once
	// per refresh however many tickets arrived together.
	if model.tracker.Observe(model.store.IDs()) {
		if bell := ringBell(model.bellEnabled); bell != nil {
			commands = append(commands, bell)
		}
	}

	if report.Replaced {
		model.clampCursor()
		// Selection consistency: the open ticket vanished from the
		// refreshed list.
		if model.syncer.Selected() && !model.store.Contains(model.syncer.SelectedID()) {
			model.closeTicket()
		}
	}
	return model, tea.Batch(commands...)
}

func (model *Model) handleDetailFetched(message detailFetchedMsg) (tea.Model, tea.Cmd) {
	if !model.syncer.Current(message.generation) {
		return model, nil
	}

	if message.err != nil {
		var authErr *helpdesk.AuthRequiredError
		if errors.As(message.err, &authErr) {
			return model.failAuth()
		}
		var notFound *helpdesk.NotFoundError
		if errors.As(message.err, &notFound) {
			// The ticket was likely removed server-side; refresh the
			// list, whose selection-consistency pass deselects it.
			model.logger.Warn("open ticket not found, refreshing list", "ticket", message.ticketID)
			if !message.polling {
				model.syncer.ClearDetail()
				model.banner = fmt.Sprintf("ticket %d no longer exists", message.ticketID)
			}
			return model, model.fetchListCmd(true)
		}
		if message.polling {
			model.logger.Warn("ticket poll failed", "ticket", message.ticketID, "error", message.err)
			return model, nil
		}
		model.syncer.ClearDetail()
		model.banner = fmt.Sprintf("failed to load ticket: %v", message.err)
		return model, nil
	}

	wasLoading := model.syncer.State() == SyncLoading
	detail := message.detail
	outcome := model.syncer.ApplyDetail(&detail, message.generation, message.polling, model.store)

	var command tea.Cmd
	if wasLoading && model.syncer.State() == SyncReady {
		// First detail of a fresh selection: start the background poll.
		command = model.detailTickCmd(message.generation)
	}
	if outcome.Applied {
		model.refreshChatContent()
	}
	if outcome.ListChanged {
		model.clampCursor()
	}
	return model, command
}

func (model *Model) handleStatusCommitted(message statusCommittedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		var authErr *helpdesk.AuthRequiredError
		if errors.As(message.err, &authErr) {
			return model.failAuth()
		}
		model.syncer.RollbackMutation(model.store)
		model.refreshChatContent()
		model.banner = fmt.Sprintf("status change failed: %v", message.err)
		return model, nil
	}

	model.syncer.CommitMutation()
	if !model.syncer.Current(message.generation) {
		return model, nil
	}
	// Foreground re-fetch absorbs server-computed fields.
	return model, model.fetchDetailCmd(model.syncer.SelectedID(), message.generation, false)
}

func (model *Model) handleMessageSent(message messageSentMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		var authErr *helpdesk.AuthRequiredError
		if errors.As(message.err, &authErr) {
			return model.failAuth()
		}
		// Remove the optimistic bubble and give the agent their text
		// back to retry by hand.
		model.syncer.RollbackMutation(model.store)
		model.replyInput.SetValue(message.restoreText)
		model.refreshChatContent()
		model.banner = fmt.Sprintf("send failed: %v", message.err)
		return model, nil
	}

	model.syncer.CommitMutation()
	if !model.syncer.Current(message.generation) {
		return model, nil
	}
	return model, model.fetchDetailCmd(model.syncer.SelectedID(), message.generation, false)
}

func (model *Model) handleComplaintCreated(message complaintCreatedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		var authErr *helpdesk.AuthRequiredError
		if errors.As(message.err, &authErr) {
			return model.failAuth()
		}
		if model.complaintModal != nil {
			model.complaintModal.Block(message.err)
		} else {
			model.banner = fmt.Sprintf("escalation failed: %v", message.err)
		}
		return model, nil
	}

	model.complaintModal = nil
	link := &ticket.ComplaintLink{ComplaintID: message.complaintID, Category: message.category}
	model.store.SetComplaint(message.ticketID, link)
	model.syncer.AttachComplaint(message.ticketID, link)
	model.refreshChatContent()
	model.toast = fmt.Sprintf("complaint %s created", message.complaintID)

	commands := []tea.Cmd{model.toastFadeCmd(), model.fetchListCmd(true)}
	if model.syncer.Selected() {
		commands = append(commands, model.fetchDetailCmd(model.syncer.SelectedID(), model.syncer.Generation(), false))
	}
	return model, tea.Batch(commands...)
}

// Key handling.

func (model *Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals and the filter dropdown capture all input while open.
	if model.statusModal != nil {
		return model.handleStatusModalKey(message)
	}
	if model.complaintModal != nil {
		return model.handleComplaintModalKey(message)
	}
	if model.statusDropdown != nil {
		return model.handleDropdownKey(message)
	}

	// The dismissible banner eats the first escape.
	if model.banner != "" && message.Type == tea.KeyEsc {
		model.banner = ""
		return model, nil
	}

	if model.filterActive {
		return model.handleFilterKey(message)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		if model.focus == focusChat && message.String() == "q" {
			break // "q" is typable in the reply input
		}
		model.quitting = true
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		if model.syncer.Selected() {
			if model.focus == focusList {
				model.focus = focusChat
				model.replyInput.Focus()
			} else {
				model.focus = focusList
				model.replyInput.Blur()
			}
		}
		return model, nil
	}

	if model.focus == focusChat {
		return model.handleChatKey(message)
	}
	return model.handleListKey(message)
}

// statusFilterOptions are the dropdown choices for the list's status
// filter. Values are store filter values, not wire statuses.
var statusFilterOptions = []tui.DropdownOption{
	{Label: "All", Value: ticket.StatusFilterAll},
	{Label: "Open", Value: string(ticket.StatusOpen)},
	{Label: "Pending", Value: string(ticket.StatusPending)},
	{Label: "Closed", Value: string(ticket.StatusClosed)},
}

// openStatusDropdown opens the status filter picker anchored under the
// list pane's status line, cursor on the active filter.
func (model *Model) openStatusDropdown() {
	dropdown := &tui.DropdownOverlay{
		Options: statusFilterOptions,
		AnchorX: 1,
		AnchorY: 2,
	}
	current := model.store.StatusFilter()
	for index, option := range statusFilterOptions {
		if option.Value == current {
			dropdown.Cursor = index
		}
	}
	model.statusDropdown = dropdown
}

func (model *Model) handleDropdownKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyEsc:
		model.statusDropdown = nil

	case message.Type == tea.KeyEnter:
		model.store.SetStatusFilter(model.statusDropdown.Selected().Value)
		model.statusDropdown = nil
		model.cursor = 0
		model.listOffset = 0

	case key.Matches(message, model.keys.Up):
		model.statusDropdown.MoveUp()

	case key.Matches(message, model.keys.Down):
		model.statusDropdown.MoveDown()
	}
	return model, nil
}

func (model *Model) handleFilterKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.filterActive = false
		model.filterInput.Blur()
		model.filterInput.SetValue("")
		model.store.SetSearch("")
		model.clampCursor()
		return model, nil
	case tea.KeyEnter:
		model.filterActive = false
		model.filterInput.Blur()
		return model, nil
	}

	var command tea.Cmd
	model.filterInput, command = model.filterInput.Update(message)
	model.store.SetSearch(model.filterInput.Value())
	model.cursor = 0
	model.listOffset = 0
	return model, command
}

func (model *Model) handleListKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.listRowCapacity())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.listRowCapacity())
	case key.Matches(message, model.keys.Home):
		model.cursor = 0
		model.listOffset = 0
	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.store.Visible()))

	case key.Matches(message, model.keys.FilterActivate):
		model.filterActive = true
		model.filterInput.Focus()
		return model, textinput.Blink

	case key.Matches(message, model.keys.FilterClear):
		model.filterInput.SetValue("")
		model.store.SetSearch("")
		model.clampCursor()

	case key.Matches(message, model.keys.StatusFilter):
		model.openStatusDropdown()

	case key.Matches(message, model.keys.Open),
		key.Matches(message, model.keys.Reply):
		return model, model.openSelected()

	case key.Matches(message, model.keys.Back):
		model.closeTicket()

	case key.Matches(message, model.keys.ChangeStatus):
		model.openStatusModal()

	case key.Matches(message, model.keys.Escalate):
		model.openComplaintModal()
	}

	// Nearing the bottom of the revealed rows starts a debounced page
	// advance.
	visible := len(model.store.Visible())
	if visible > 0 && model.cursor >= visible-pageAdvanceThresholdRows {
		if model.store.BeginAdvance() {
			return model, model.pageAdvanceCmd()
		}
	}
	return model, nil
}

func (model *Model) handleChatKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.focus = focusList
		model.replyInput.Blur()
		return model, nil

	case tea.KeyEnter:
		return model, model.sendReply()

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyCtrlU, tea.KeyCtrlD:
		var command tea.Cmd
		model.chatViewport, command = model.chatViewport.Update(message)
		return model, command
	}

	var command tea.Cmd
	model.replyInput, command = model.replyInput.Update(message)
	return model, command
}

func (model *Model) handleStatusModalKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.statusModal = nil
		return model, nil

	case tea.KeyCtrlD:
		modal := model.statusModal
		err := model.syncer.BeginStatusMutation(modal.transition, modal.Note(), model.store)
		if err != nil {
			// Validation failures block the commit client-side; no
			// network call is issued.
			modal.Block(err)
			return model, nil
		}
		model.statusModal = nil
		model.refreshChatContent()
		return model, model.updateStatusCmd(modal.transition, modal.Note(), model.syncer.Generation())
	}

	return model, model.statusModal.Update(message)
}

func (model *Model) handleComplaintModalKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.complaintModal = nil
		return model, nil

	case tea.KeyCtrlD:
		modal := model.complaintModal
		request, err := modal.Request()
		if err != nil {
			modal.Block(err)
			return model, nil
		}
		return model, model.createComplaintCmd(model.syncer.SelectedID(), request, modal.Category())
	}

	return model, model.complaintModal.Update(message)
}

// Selection and mutation entry points.

func (model *Model) openSelected() tea.Cmd {
	visible := model.store.Visible()
	if model.cursor >= len(visible) {
		return nil
	}
	target := visible[model.cursor]
	if model.syncer.Selected() && model.syncer.SelectedID() == target.InternalID {
		model.focus = focusChat
		model.replyInput.Focus()
		return nil
	}

	if previous := model.syncer.SelectedID(); previous != 0 {
		model.scroll.Forget(previous)
	}
	generation := model.syncer.Select(target.InternalID)
	model.chatViewport.SetContent("")
	model.focus = focusChat
	model.replyInput.Focus()
	// The background poll starts once this foreground fetch lands.
	return model.fetchDetailCmd(target.InternalID, generation, false)
}

// closeTicket deselects the open ticket, stops its poll, and drops its
// scroll baseline.
func (model *Model) closeTicket() {
	if !model.syncer.Selected() {
		return
	}
	model.scroll.Forget(model.syncer.SelectedID())
	model.syncer.Deselect()
	model.chatViewport.SetContent("")
	model.focus = focusList
	model.replyInput.Blur()
}

func (model *Model) openStatusModal() {
	transition, err := model.syncer.ProposeStatusChange()
	if err != nil {
		if !errors.Is(err, ErrNoSelection) {
			model.banner = err.Error()
		}
		return
	}
	innerWidth, _ := tui.ModalSize(model.width, model.height, 64, 0)
	model.statusModal = newStatusModal(transition, model.syncer.Detail(), innerWidth)
}

func (model *Model) openComplaintModal() {
	detail := model.syncer.Detail()
	if detail == nil {
		return
	}
	if detail.Complaint != nil {
		model.banner = "ticket already has a complaint: " + detail.Complaint.ComplaintID
		return
	}
	innerWidth, _ := tui.ModalSize(model.width, model.height, 72, 0)
	model.complaintModal = newComplaintModal(detail, model.timeSource.Now(), innerWidth)
}

func (model *Model) sendReply() tea.Cmd {
	text, err := model.syncer.BeginSendMutation(model.replyInput.Value(), model.store)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			return nil
		}
		model.banner = err.Error()
		return nil
	}
	model.replyInput.SetValue("")
	model.refreshChatContent()
	return model.sendMessageCmd(model.syncer.SelectedID(), text, model.syncer.Generation())
}

// Cursor management.

func (model *Model) moveCursor(delta int) {
	model.cursor += delta
	model.clampCursor()
}

func (model *Model) clampCursor() {
	visible := len(model.store.Visible())
	if model.cursor >= visible {
		model.cursor = visible - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}

	capacity := model.listRowCapacity()
	if model.cursor < model.listOffset {
		model.listOffset = model.cursor
	}
	if model.cursor >= model.listOffset+capacity {
		model.listOffset = model.cursor - capacity + 1
	}
	if model.listOffset < 0 {
		model.listOffset = 0
	}
}

// refreshChatContent rebuilds the viewport content from the held
// detail and applies the scroll decision. The controller's baseline
// absorbs local re-renders (optimistic echo, resize) the same way it
// absorbs fetches.
func (model *Model) refreshChatContent() {
	detail := model.syncer.Detail()
	if detail == nil {
		model.chatViewport.SetContent("")
		return
	}

	renderer := NewChatRenderer(model.theme, model.chatViewport.Width, model.complaintBase)
	content := renderer.RenderThread(detail) + renderer.RenderResolution(detail)
	model.chatViewport.SetContent(content)

	contentHeight := lipgloss.Height(content)
	snap := model.scroll.Decide(
		detail.InternalID,
		len(detail.Messages),
		contentHeight,
		model.chatViewport.YOffset,
		model.chatViewport.Height,
	)
	if snap {
		model.chatViewport.GotoBottom()
	}
}

// View rendering.

// View renders the full console frame.
func (model *Model) View() string {
	if model.width == 0 || model.height == 0 {
		return ""
	}

	listWidth := model.listWidth()
	chatWidth := model.width - listWidth - 1

	listPane := model.renderListPane(listWidth)
	chatPane := model.renderChatPane(chatWidth)

	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).
		Render(strings.TrimRight(strings.Repeat("│\n", model.height-1), "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, divider, chatPane)
	view := body + "\n" + model.renderStatusBar()

	if model.statusModal != nil {
		lines, anchorX, anchorY := model.statusModal.Render(model.theme, model.width, model.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	}
	if model.complaintModal != nil {
		lines, anchorX, anchorY := model.complaintModal.Render(model.theme, model.width, model.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	}
	if model.statusDropdown != nil {
		view = tui.SpliceOverlay(view, model.statusDropdown.Render(model.theme),
			model.statusDropdown.AnchorX, model.statusDropdown.AnchorY)
	}
	return view
}

func (model *Model) renderListPane(width int) string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	filterLine := model.filterInput.View()
	if !model.filterActive && model.filterInput.Value() == "" {
		filterLine = faint.Render(" / to filter")
	}

	statusLine := faint.Render(" status: ") +
		lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).
			Render(model.store.StatusFilter()) +
		faint.Render("  (s changes)")

	renderer := NewListRenderer(model.theme, width-1)
	visible := model.store.Visible()
	capacity := model.listRowCapacity()
	reference := model.timeSource.Now()

	var rows []string
	end := model.listOffset + capacity
	if end > len(visible) {
		end = len(visible)
	}
	for index := model.listOffset; index < end; index++ {
		selected := index == model.cursor && model.focus == focusList
		rows = append(rows, renderer.RenderRow(visible[index], selected, reference))
	}
	for len(rows) < capacity {
		rows = append(rows, "")
	}

	scrollbar := tui.RenderScrollbar(model.theme, capacity,
		len(visible), capacity, model.listOffset, model.focus == focusList)
	table := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(rows, "\n"), scrollbar)

	pane := filterLine + "\n" + statusLine + "\n" + table + "\n" + renderer.RenderFooter(model.store)
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(pane)
}

func (model *Model) renderChatPane(width int) string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	detail := model.syncer.Detail()
	if detail == nil {
		var placeholder string
		switch {
		case model.syncer.State() == SyncLoading:
			placeholder = "loading ticket…"
		default:
			placeholder = "select a ticket to open its conversation"
		}
		return lipgloss.Place(width, model.height-1,
			lipgloss.Center, lipgloss.Center, faint.Render(placeholder))
	}

	renderer := NewChatRenderer(model.theme, width, model.complaintBase)
	header := renderer.RenderHeader(detail)

	inputLine := model.replyInput.View()
	if detail.Status == ticket.StatusClosed {
		inputLine = faint.Render("ticket is closed — reopen to reply (c)")
	}

	return header + "\n" + model.chatViewport.View() + "\n" + inputLine
}

func (model *Model) renderStatusBar() string {
	switch {
	case model.banner != "":
		return lipgloss.NewStyle().
			Foreground(model.theme.ErrorForeground).
			Background(model.theme.ErrorBackground).
			Width(model.width).
			Render(" " + model.banner + "  (Esc dismisses)")

	case model.statusMessage != "":
		style := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		if model.statusLevel >= slog.LevelError {
			style = style.Foreground(model.theme.ErrorForeground).
				Background(model.theme.ErrorBackground)
		}
		return style.Width(model.width).Render(" " + model.statusMessage)

	case model.toast != "":
		return lipgloss.NewStyle().
			Foreground(model.theme.StatusOpen).
			Width(model.width).
			Render(" " + model.toast)
	}

	help := " Enter open · Tab pane · / filter · s status · c change · e escalate · q quit"
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Width(model.width).
		Render(help)
}
