package controller

import "github.com/gdamore/tcell/v2"

// Rune keys folded into the tcell.Key space so a single map can dispatch
// both special keys and letters.
const (
	KeyA tcell.Key = 'a'
	KeyD tcell.Key = 'd'
	KeyE tcell.Key = 'e'
	KeyG tcell.Key = 'g'
	KeyI tcell.Key = 'i'
	KeyQ tcell.Key = 'q'
	KeyR tcell.Key = 'r'
	KeyT tcell.Key = 't'
)

// keyNames overrides tcell's names for the rune keys above.
var keyNames = map[tcell.Key]string{
	KeyA: "a",
	KeyD: "d",
	KeyE: "e",
	KeyG: "g",
	KeyI: "i",
	KeyQ: "q",
	KeyR: "r",
	KeyT: "t",
}

// AsKey maps a key event to the lookup key used by the event maps.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	return tcell.Key(evt.Rune())
}

// KeyName renders a key for the shortcut headers.
func KeyName(key tcell.Key) string {
	if name, ok := keyNames[key]; ok {
		return name
	}

	return tcell.KeyNames[key]
}
