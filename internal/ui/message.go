package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/popcorn/internal/tasks"
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
	MsgSearchResult MsgKind = iota
	MsgDetailResult
	MsgBrowserOpened
)

// searchResultMsg is the constructor for [MsgSearchResult]
func searchResultMsg(res tasks.SearchResult) Msg {
	return Msg{kind: MsgSearchResult, data: res}
}

// detailResultMsg is the constructor for [MsgDetailResult]
func detailResultMsg(res tasks.DetailResult) Msg {
	return Msg{kind: MsgDetailResult, data: res}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(url string, err error) Msg {
	return Msg{
		kind: MsgBrowserOpened,
		data: struct {
			url string
			err error
		}{url, err},
	}
}
