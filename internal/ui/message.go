package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/coursetrack/internal/course"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCatalogLoaded MsgKind = iota
	MsgBrowserOpened
)

// catalogLoadedMsg is the constructor for [MsgCatalogLoaded]
func catalogLoadedMsg(res course.LoadResult) Msg {
	return Msg{kind: MsgCatalogLoaded, data: res}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(target string, err error) Msg {
	return Msg{
		kind: MsgBrowserOpened,
		data: browserResult{target, err},
	}
}

type browserResult struct {
	target string
	err    error
}
