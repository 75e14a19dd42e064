// Package console reads interactive commands from a text stream.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"

	"RankScope/internal/logger"
)

// CommandHandler is called with the shell-split words of each command line.
type CommandHandler func(args []string) string

// StartPolling reads one command per line from r and writes each non-empty
// reply to w. Blocks until EOF, a read error or ctx is cancelled.
func StartPolling(ctx context.Context, r io.Reader, w io.Writer, handler CommandHandler) error {
	lines := make(chan string)
	done := make(chan error, 1)

	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				done <- nil
				return
			}
		}
		done <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("console polling stopped")
			return nil
		case err := <-done:
			if err != nil {
				return fmt.Errorf("read command: %w", err)
			}
			logger.Info("console input closed")
			return nil
		case line := <-lines:
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			args, err := shellquote.Split(line)
			if err != nil {
				logger.Warn("parse command %q: %v", line, err)
				fmt.Fprintf(w, "error: %v\n", err)
				continue
			}
			logger.Debug("received command: %s", line)
			if reply := handler(args); reply != "" {
				if !strings.HasSuffix(reply, "\n") {
					reply += "\n"
				}
				if _, err := io.WriteString(w, reply); err != nil {
					return fmt.Errorf("write reply: %w", err)
				}
			}
		}
	}
}
