package main

import "github.com/gdamore/tcell/v2"

type action uint8

const (
	actionNone action = iota
	actionQuit
	actionPause
	actionDiagnostics
	actionMute
)

// keyAction maps a key press to a driver action
func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return actionQuit
		case 'p', 'P', ' ':
			return actionPause
		case 'd', 'D':
			return actionDiagnostics
		case 'm', 'M':
			return actionMute
		}
	}
	return actionNone
}
