package printing

import (
	"fmt"
	"os"
	"sync"

	"github.com/kenshaw/escpos"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// USBDevice drives an ESC/POS thermal printer through its usblp character
// device. The mutex guarantees a single active session: the second caller
// blocks until the first receipt is cut.
type USBDevice struct {
	path string
	mu   sync.Mutex
}

func NewUSBDevice(path string) *USBDevice {
	return &USBDevice{path: path}
}

// Open claims the printer and starts a session. An unreachable device
// surfaces as an error here; nothing is retried.
func (d *USBDevice) Open() (Session, error) {
	d.mu.Lock()

	f, err := os.OpenFile(d.path, os.O_RDWR, 0)
	if err != nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("could not open printer device %s: %w", d.path, err)
	}

	p := escpos.New(f)
	p.Init()
	return &escposSession{device: d, file: f, printer: p, encoder: encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder())}, nil
}

type escposSession struct {
	device    *USBDevice
	file      *os.File
	printer   *escpos.Escpos
	encoder   *encoding.Encoder
	closeOnce sync.Once
	closeErr  error
}

func (s *escposSession) Align(pos string) {
	s.printer.SetAlign(pos)
}

func (s *escposSession) TextSize(width, height uint8) {
	s.printer.SetFontSize(width, height)
}

func (s *escposSession) Underline(on bool) {
	if on {
		s.printer.SetUnderline(2)
	} else {
		s.printer.SetUnderline(0)
	}
}

func (s *escposSession) Line(text string) {
	// The printer speaks CP437; unsupported runes degrade instead of
	// corrupting the byte stream.
	encoded, err := s.encoder.String(text)
	if err != nil {
		logger.Error().Err(err).Str("text", text).Msg("Error encoding receipt line")
		encoded = text
	}
	s.printer.Write(encoded)
	s.printer.Linefeed()
}

func (s *escposSession) Feed(lines int) {
	s.printer.FormfeedN(lines)
}

func (s *escposSession) Cut() {
	s.printer.Cut()
}

// Close is safe to call more than once; callers defer it so a panic while
// rendering cannot leave the printer locked for good.
func (s *escposSession) Close() error {
	s.closeOnce.Do(func() {
		s.printer.End()
		s.closeErr = s.file.Close()
		s.device.mu.Unlock()
	})
	return s.closeErr
}
