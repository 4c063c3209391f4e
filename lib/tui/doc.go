// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal UI primitives for the helpdesk
// console: the color theme, scrollbar rendering, overlay splicing for
// floating menus and modals, and the dropdown widget.
package tui
