package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/appengine-ltd/survive-it-weather/internal/parser"
	"github.com/appengine-ltd/survive-it-weather/internal/session"
)

// console is the line-based front-end. Wall time between lines is fed to
// the session as frame time.
type console struct {
	sess   *session.Session
	parser *parser.Parser
	in     io.Reader
	out    io.Writer
	now    func() time.Time
}

func newConsole(sess *session.Session, in io.Reader, out io.Writer) *console {
	return &console{sess: sess, parser: parser.New(), in: in, out: out, now: time.Now}
}

func (c *console) run(ctx context.Context) error {
	fmt.Fprintln(c.out, session.FormatStatus(c.sess.Status()))
	fmt.Fprintln(c.out, `Type "help" for commands.`)

	scanner := bufio.NewScanner(c.in)
	last := c.now()
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		now := c.now()
		c.sess.Frame(now.Sub(last).Seconds())
		last = now

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		res := c.sess.Execute(ctx, c.parser.Parse(c.sess.ParseContext(), line))
		fmt.Fprintln(c.out, res.Message)
		if res.Quit {
			return nil
		}
	}
	fmt.Fprintln(c.out)
	return scanner.Err()
}
