// Package ui implements an interactive terminal interface for the course tracker using bubbletea's Elm architecture.
//
// The screen has two panes:
//  1. the sidebar : sections with per-section progress; enter selects one
//  2. the lesson pane : lessons of the active section above a scrollable detail view
//
// Wide terminals (at or above the controller breakpoint) show both panes side by side and tab moves focus.
// Narrow terminals show one pane at a time and the sidebar is toggled on demand; widening the terminal closes it.
//
// The (view) [Model] owns no tracker state. It forwards every action to a [course.Controller] and redraws from the
// controller's accessors. The catalog fetch runs as a [tea.Cmd] and is installed on the event loop via the Msg union.
//
// Keyboard navigation uses vim-style bindings (j/k, n/p, enter, esc, q) with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
