// Package console serves the command adapter over a line-oriented stream,
// typically stdin and stdout.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bft-labs/i2p/internal/command"
	"github.com/bft-labs/i2p/pkg/log"
)

// Session reads one command per line and writes each reply followed by a
// blank line. Lines that are not commands produce no output.
type Session struct {
	dispatcher *command.Dispatcher
	in         io.Reader
	out        io.Writer
	logger     log.Logger

	mu sync.Mutex // guards out
}

// NewSession creates a session over in and out.
func NewSession(d *command.Dispatcher, in io.Reader, out io.Writer, logger log.Logger) *Session {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Session{dispatcher: d, in: in, out: out, logger: logger}
}

// Run processes lines until the input is exhausted or ctx is cancelled.
// EOF and cancellation both return nil.
func (s *Session) Run(ctx context.Context) error {
	lines := make(chan string)
	done := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				done <- nil
				return
			}
		}
		done <- scanner.Err()
	}()

	s.logger.Info("console session started", log.String("prefix", s.dispatcher.Prefix()))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("console session cancelled")
			return nil
		case err := <-done:
			if err != nil {
				return fmt.Errorf("read console input: %w", err)
			}
			s.logger.Info("console input closed")
			return nil
		case line := <-lines:
			reply, ok := s.dispatcher.Handle(ctx, line)
			if !ok {
				continue
			}
			if err := s.write(reply); err != nil {
				return err
			}
		}
	}
}

func (s *Session) write(reply command.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.out, "%s\n\n", reply.Text); err != nil {
		return fmt.Errorf("write console reply: %w", err)
	}
	return nil
}
