package gateway

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/rahul/kaam/internal/agent"
	"github.com/rahul/kaam/internal/observability"
)

// ConsolePrompt is printed before every line read.
const ConsolePrompt = "Ask me anything: "

// ConsoleGateway is a read-eval loop over a line-oriented stream.
type ConsoleGateway struct {
	Worker  Worker
	In      io.Reader
	Out     io.Writer
	Session string

	stopped atomic.Bool
}

func NewConsoleGateway(worker Worker, in io.Reader, out io.Writer) *ConsoleGateway {
	return &ConsoleGateway{Worker: worker, In: in, Out: out, Session: "console"}
}

// Start reads lines until "exit" (any case), end of input or ctx is done.
// Agent errors are printed and the loop goes on.
func (c *ConsoleGateway) Start(ctx context.Context) error {
	ctx = agent.WithSession(ctx, c.Session)
	scanner := bufio.NewScanner(c.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for !c.stopped.Load() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		observability.PrintPrompt(c.Out, ConsolePrompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "failed to read input")
			}
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			return nil
		}

		res, err := c.Worker.Work(ctx, line)
		if err != nil {
			observability.PrintError(c.Out, err)
			continue
		}
		observability.PrintResult(c.Out, res.Output)
	}
	return nil
}

// Send prints text regardless of chatID.
func (c *ConsoleGateway) Send(chatID string, text string) error {
	observability.PrintResult(c.Out, text)
	return nil
}

func (c *ConsoleGateway) Stop() error {
	c.stopped.Store(true)
	return nil
}
