package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/dmitrijs2005/daykeeper/internal/session"
)

// TerminalCapability simulates a biometric sensor over the terminal: the
// prompt asks the user to confirm their identity instead of scanning a
// finger or face. It satisfies session.BiometricCapability so the rest of
// the stack is unaware it is not real hardware.
type TerminalCapability struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewTerminalCapability(reader *bufio.Reader, out io.Writer) *TerminalCapability {
	return &TerminalCapability{reader: reader, out: out}
}

func (c *TerminalCapability) IsAvailable(ctx context.Context) session.Availability {
	return session.Availability{Available: true, Kind: session.BiometryGeneric}
}

func (c *TerminalCapability) Authenticate(ctx context.Context) (bool, error) {
	return GetConfirm(c.reader, "Confirm it is really you", c.out)
}
