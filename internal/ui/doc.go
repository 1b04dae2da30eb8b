// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-tab moderation workflow:
//  1. [PendingView] : Review pending suggestions and approve/reject them
//  2. [CatalogView] : Browse the approved catalog and delete entries
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Decisions run asynchronously through the engines; a settled row lingers briefly
// with its outcome before leaving the list, and a generation counter discards
// replies that arrive after the list was reloaded.
//
// Keyboard navigation uses vim-style bindings (j/k, a/r, o, tab, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
