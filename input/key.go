package input

// KeyCode enumerates the special keys the decoder recognizes. Char
// carries its byte value separately in KeyEvent.Ch.
type KeyCode int

const (
	KeyChar KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Mod is a bitmask over the modifier keys the decoder can report.
// Shift is never set: terminals report shifted keys as distinct bytes
// rather than a modifier flag.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent is a single decoded keypress.
type KeyEvent struct {
	Code KeyCode
	Ch   byte // valid when Code == KeyChar
	Mod  Mod
}

// EventType tags the variant held by an Event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Event is the tagged union poll returns: no input, a key, or a
// terminal resize.
type Event struct {
	Type EventType
	Key  KeyEvent
	Rows int
	Cols int
}
