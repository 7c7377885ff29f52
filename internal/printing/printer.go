package printing

// Device is the physical receipt printer. Open starts one receipt session;
// only one session is active at a time.
type Device interface {
	Open() (Session, error)
}

// Session is one open-to-close interaction with the printer producing one
// printed document. The capability surface mirrors what the thermal printer
// driver offers: styled text, paper feed, paper cut.
type Session interface {
	Align(pos string) // "left" or "center"
	TextSize(width, height uint8)
	Underline(on bool)
	Line(text string)
	Feed(lines int)
	Cut()
	Close() error
}

const (
	AlignLeft   = "left"
	AlignCenter = "center"
)
