package menu

// Command is one discrete user action.
type Command int

const (
	CmdNone Command = iota
	CmdInsert
	CmdDeleteLeft
	CmdDeleteRight
	CmdDeleteWordLeft
	CmdDeleteToStart
	CmdDeleteToEnd
	CmdLeft
	CmdRight
	CmdUp
	CmdDown
	CmdPageUp
	CmdPageDown
	CmdHome
	CmdEnd
	CmdTab
	CmdBackTab
	CmdCommit
	CmdCommitText
	CmdCancel

	// Pointer commands. Item is the offset into the visible page.
	CmdClearInput
	CmdHover
	CmdPick
	CmdScrollUp
	CmdScrollDown
)

var commandNames = map[Command]string{
	CmdNone:           "none",
	CmdInsert:         "insert",
	CmdDeleteLeft:     "delete_left",
	CmdDeleteRight:    "delete_right",
	CmdDeleteWordLeft: "delete_word_left",
	CmdDeleteToStart:  "delete_to_start",
	CmdDeleteToEnd:    "delete_to_end",
	CmdLeft:           "left",
	CmdRight:          "right",
	CmdUp:             "up",
	CmdDown:           "down",
	CmdPageUp:         "page_up",
	CmdPageDown:       "page_down",
	CmdHome:           "home",
	CmdEnd:            "end",
	CmdTab:            "complete",
	CmdBackTab:        "complete_back",
	CmdCommit:         "accept",
	CmdCommitText:     "accept_text",
	CmdCancel:         "cancel",
	CmdClearInput:     "clear_input",
	CmdHover:          "hover",
	CmdPick:           "pick",
	CmdScrollUp:       "scroll_up",
	CmdScrollDown:     "scroll_down",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand resolves a command by the name String returns.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return CmdNone, false
}

// IsPointer reports whether c originates from the mouse.
func (c Command) IsPointer() bool {
	return c >= CmdClearInput
}

// Event is a command with its payload.
type Event struct {
	Cmd  Command
	Text string // CmdInsert
	Item int    // CmdHover, CmdPick
}

// Status is the terminal outcome of a session.
type Status int

const (
	StatusRunning Status = iota
	StatusSuccess
	StatusFailure
)

// Transition reports what an applied event changed.
type Transition struct {
	// Redraw is set when visible state changed.
	Redraw bool
	// Done is set by terminal transitions; Status tells which.
	Done   bool
	Status Status
	// Output holds lines to write to the result stream, in order.
	Output []string
}
