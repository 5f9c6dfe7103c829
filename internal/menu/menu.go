package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/catalog"
)

// Querier resolves a service name to the server's reply.
type Querier interface {
	Query(ctx context.Context, service string) (string, error)
}

// Shell is the numbered service menu shown by the client.
type Shell struct {
	in       *bufio.Reader
	out      io.Writer
	services []catalog.Service
	q        Querier
}

func New(in io.Reader, out io.Writer, services []catalog.Service, q Querier) *Shell {
	return &Shell{
		in:       bufio.NewReader(in),
		out:      out,
		services: services,
		q:        q,
	}
}

// Run prompts until the user picks 0 or input ends. A failed query stops
// the shell and is returned.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.prompt()

		line, err := s.in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("failed to read choice: %w", err)
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case errors.Is(convErr, strconv.ErrRange):
			fmt.Fprintf(s.out, "Invalid choice. Please enter a number between 1 and %d.\n", len(s.services))
			continue
		case convErr != nil:
			fmt.Fprintf(s.out, "Invalid input. Please enter a number between 0 and %d.\n", len(s.services))
			continue
		case choice == 0:
			fmt.Fprintln(s.out, "Exiting the client program.")
			return nil
		case choice < 1 || choice > len(s.services):
			fmt.Fprintf(s.out, "Invalid choice. Please enter a number between 1 and %d.\n", len(s.services))
			continue
		}

		reply, err := s.q.Query(ctx, s.services[choice-1].Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Response from server: %s\n", reply)
	}
}

func (s *Shell) prompt() {
	fmt.Fprintln(s.out, "\nEnter the service you need:")
	for i, svc := range s.services {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, svc.Name)
	}
	fmt.Fprintln(s.out, "Type '0' to exit")
	fmt.Fprint(s.out, "Enter your choice: ")
}
