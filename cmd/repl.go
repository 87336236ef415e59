package main

import (
	"bufio"
	"chat-bot/services"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
)

const prompt = "you> "

// repl reads one utterance per line and prints the bot reply.
type repl struct {
	chat    services.IChatService
	in      io.Reader
	out     io.Writer
	colours bool
}

func newREPL(chat services.IChatService, in io.Reader, out io.Writer, colours bool) *repl {
	return &repl{chat: chat, in: in, out: out, colours: colours}
}

// Run returns nil when the input is exhausted or ctx is canceled.
func (r *repl) Run(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	r.print(prompt, color.FgGray)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			utterance := strings.TrimSpace(line)
			if utterance == "" {
				r.print(prompt, color.FgGray)
				continue
			}

			reply, err := r.chat.Chat(ctx, utterance)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("chat failed: %w", err)
			}
			r.print("bot> "+reply+"\n", color.FgGreen)
			r.print(prompt, color.FgGray)
		}
	}
}

func (r *repl) print(text string, c color.Color) {
	if r.colours {
		text = color.New(c).Render(text)
	}
	_, _ = fmt.Fprint(r.out, text)
}
