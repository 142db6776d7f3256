// Package shell implements the interactive numbered-menu front-ends.
//
// A Shell reads one line per prompt and runs one operation at a time.
// Operation failures are printed and the session continues; end of input
// ends the session cleanly.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ruteri/healthcare-contract-client/chain"
)

const rule = "================================"

// Shell is a line-oriented prompt over a reader and a writer.
type Shell struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a shell reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Shell {
	return &Shell{in: bufio.NewReader(in), out: out}
}

// Printf writes formatted output.
func (s *Shell) Printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

// Println writes a line of output.
func (s *Shell) Println(args ...interface{}) {
	fmt.Fprintln(s.out, args...)
}

// Prompt prints prompt and returns the trimmed reply. It returns io.EOF when
// the input ends before a reply.
func (s *Shell) Prompt(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// SelectNetwork asks for one of networks by menu number.
func (s *Shell) SelectNetwork(networks []chain.Network) (chain.Network, error) {
	s.Println("\nSelect Network")
	s.Println("================")
	for _, n := range networks {
		s.Printf("%s: %s\n", n.Choice, n.Name)
	}
	s.Println("================")

	choice, err := s.Prompt(fmt.Sprintf("\nEnter network choice (1-%d): ", len(networks)))
	if err != nil {
		return chain.Network{}, err
	}
	for _, n := range networks {
		if n.Choice == choice {
			return n, nil
		}
	}
	return chain.Network{}, fmt.Errorf("invalid network choice %q", choice)
}

// menuItem is one numbered entry. A nil action ends the loop.
type menuItem struct {
	label  string
	action func(ctx context.Context) error
}

// runMenu dispatches choices until the exit item is picked or input ends.
// Only context cancellation and read errors stop the loop; action errors
// are expected to be reported by the action itself.
func (s *Shell) runMenu(ctx context.Context, title string, items []menuItem) error {
	for {
		s.Printf("\n%s\n%s\n", title, rule)
		for i, item := range items {
			s.Printf("%d. %s\n", i+1, item.label)
		}
		s.Println(rule)

		choice, err := s.Prompt(fmt.Sprintf("\nEnter your choice (1-%d): ", len(items)))
		if err != nil {
			return endOfInput(err)
		}

		var picked *menuItem
		for i := range items {
			if choice == fmt.Sprint(i+1) {
				picked = &items[i]
			}
		}

		switch {
		case picked == nil:
			s.Println("Invalid choice! Please try again.")
		case picked.action == nil:
			s.Println("\nGoodbye!")
			return nil
		default:
			if err := picked.action(ctx); err != nil {
				return endOfInput(err)
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Prompt("\nPress Enter to continue..."); err != nil {
			return endOfInput(err)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// report prints an operation failure. Cancellation is returned so the menu
// loop stops; every other error leaves the session running.
func (s *Shell) report(ctx context.Context, what string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.Printf("Error %s: %v\n", what, err)
	return nil
}
