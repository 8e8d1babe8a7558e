package cli

import (
	"io"
	"strings"

	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/timer"
)

// bellSignaler rings the terminal bell: twice when a focus interval ends,
// once after a break.
type bellSignaler struct {
	w io.Writer
}

// NewBellSignaler returns a Signaler writing BEL characters to w.
func NewBellSignaler(w io.Writer) timer.Signaler {
	return bellSignaler{w: w}
}

func (b bellSignaler) Signal(mode domain.TimerMode) error {
	n := 1
	if mode == domain.ModeFocus {
		n = 2
	}
	_, err := io.WriteString(b.w, strings.Repeat("\a", n))
	return err
}
