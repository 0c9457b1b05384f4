// internal/diag/command.go
package diag

// CommandKind is the wire number of a command.
type CommandKind int

const (
	CmdReset   CommandKind = 1
	CmdEnable  CommandKind = 2
	CmdDisable CommandKind = 3
	CmdGet     CommandKind = 4
)

func (k CommandKind) String() string {
	switch k {
	case CmdReset:
		return "reset"
	case CmdEnable:
		return "enable"
	case CmdDisable:
		return "disable"
	case CmdGet:
		return "get"
	default:
		return "unknown"
	}
}

// Command is one of Reset, Enable, Disable or *Get.
// The set is closed: only this package can add variants.
type Command interface {
	Kind() CommandKind
	command()
}

// Reset restores the source's value(s) to their initial state.
type Reset struct{}

// Enable resumes active updates of the source.
type Enable struct{}

// Disable suspends active updates of the source.
type Disable struct{}

// Get asks the source to serialize its current value into Buf.
// The handler sets N to the number of bytes written. When Buf is too
// small the handler returns ErrBufferTooSmall and leaves Buf untouched.
type Get struct {
	Buf []byte
	N   int
}

func (Reset) Kind() CommandKind   { return CmdReset }
func (Enable) Kind() CommandKind  { return CmdEnable }
func (Disable) Kind() CommandKind { return CmdDisable }
func (*Get) Kind() CommandKind    { return CmdGet }

func (Reset) command()   {}
func (Enable) command()  {}
func (Disable) command() {}
func (*Get) command()    {}

// NewCommand builds the variant for a wire number. Get is returned with
// buf as its buffer; buf is ignored for other kinds.
func NewCommand(kind CommandKind, buf []byte) (Command, error) {
	switch kind {
	case CmdReset:
		return Reset{}, nil
	case CmdEnable:
		return Enable{}, nil
	case CmdDisable:
		return Disable{}, nil
	case CmdGet:
		return &Get{Buf: buf}, nil
	default:
		return nil, unsupported("command %d", int(kind))
	}
}
