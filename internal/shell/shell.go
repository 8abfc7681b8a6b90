// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package shell is the interactive terminal front end of the admin tool.
// It signs the user in, shows the dashboard and drives the management
// views over the portfolio services, asking y/n questions for every
// destructive operation.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"

	"folioadmin/internal/models"
	"folioadmin/internal/portfolio"
)

// errQuit ends the session from the dashboard.
var errQuit = errors.New("quit")

// Services are the portfolio services the shell drives.
type Services struct {
	Auth       *portfolio.Authenticator
	Projects   *portfolio.ProjectService
	Experience *portfolio.ExperienceService
	About      *portfolio.AboutService
	Contacts   *portfolio.ContactService
	Overview   *portfolio.Overview
}

// Option configures a Shell.
type Option func(*Shell)

// WithTerminal reads passwords from the terminal at fd without echo.
// It has no effect when fd is not a terminal.
func WithTerminal(fd int) Option {
	return func(s *Shell) {
		if term.IsTerminal(fd) {
			s.passwordFD = fd
		}
	}
}

// Shell is one interactive session.
type Shell struct {
	in         *bufio.Reader
	out        io.Writer
	svc        Services
	prompter   *prompter
	passwordFD int
}

// New creates a Shell reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, svc Services, opts ...Option) *Shell {
	s := &Shell{
		in:         bufio.NewReader(in),
		out:        out,
		svc:        svc,
		passwordFD: -1,
	}
	s.prompter = &prompter{s: s}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run signs the user in and runs the dashboard until the user quits or
// the input ends.
func (s *Shell) Run(ctx context.Context) error {
	user, err := s.login(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	fmt.Fprintf(s.out, "Welcome, %s.\n", user.Username)

	err = s.dashboard(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, errQuit) {
		fmt.Fprintln(s.out, "Goodbye.")
		return nil
	}
	return err
}

// login asks for credentials until they are accepted.
func (s *Shell) login(ctx context.Context) (*models.User, error) {
	fmt.Fprintln(s.out, "Portfolio Admin Login")
	for {
		username, err := s.readLine("Username: ")
		if err != nil {
			return nil, err
		}
		password, err := s.readPassword("Password: ")
		if err != nil {
			return nil, err
		}

		username = strings.TrimSpace(username)
		if username == "" || password == "" {
			s.prompter.Notify(portfolio.NoticeWarning, "Please enter both username and password.")
			continue
		}

		if user, ok := s.svc.Auth.Authenticate(ctx, username, password); ok {
			return user, nil
		}
		s.prompter.Notify(portfolio.NoticeError, portfolio.MsgInvalidCredentials)
	}
}

// dashboard shows the counts and dispatches to a management view.
func (s *Shell) dashboard(ctx context.Context) error {
	for {
		counts, err := s.svc.Overview.Counts(ctx)
		if err != nil {
			s.report(err)
		} else {
			fmt.Fprintf(s.out, "\nDashboard: %d projects, %d experience entries in %d categories, %d contacts (%d deleted)\n",
				counts.Projects, counts.Experience, counts.Categories, counts.ActiveContacts, counts.DeletedContacts)
		}
		fmt.Fprintln(s.out, "  1) Projects  2) Experience  3) About Me  4) Contacts  q) Logout")

		choice, err := s.readLine("> ")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "1", "projects":
			err = s.projectsView(ctx)
		case "2", "experience":
			err = s.experienceView(ctx)
		case "3", "about":
			err = s.aboutView(ctx)
		case "4", "contacts":
			err = s.contactsView(ctx)
		case "q", "quit", "logout":
			return errQuit
		case "":
		default:
			fmt.Fprintf(s.out, "Unknown choice %q.\n", choice)
		}
		if err != nil {
			return err
		}
	}
}

// readLine prints prompt and returns the next input line without its line
// ending. A final line without a newline is returned before io.EOF.
func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) readPassword(prompt string) (string, error) {
	if s.passwordFD < 0 {
		return s.readLine(prompt)
	}
	fmt.Fprint(s.out, prompt)
	b, err := term.ReadPassword(s.passwordFD)
	fmt.Fprintln(s.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

// readText reads lines until one holding a single ".".
func (s *Shell) readText() (string, error) {
	var lines []string
	for {
		line, err := s.readLine("")
		if err != nil {
			return "", err
		}
		if line == "." {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}

// report shows a service error. A declined confirmation is not an error.
func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, portfolio.ErrNotConfirmed):
		fmt.Fprintln(s.out, "Cancelled.")
	case portfolio.IsValidation(err):
		s.prompter.Notify(portfolio.NoticeWarning, err.Error())
	default:
		s.prompter.Notify(portfolio.NoticeError, err.Error())
	}
}

// command splits an input line into its verb and the rest.
func command(line string) (string, string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

// pick returns the item at the 1-based position arg.
func pick[T any](items []T, arg string) (*T, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		return nil, false
	}
	return &items[n-1], true
}

// prompter asks questions and shows notices on the terminal.
type prompter struct {
	s *Shell
}

func (p *prompter) Confirm(question string) bool {
	answer, err := p.s.readLine(question + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *prompter) Notify(kind portfolio.NoticeKind, message string) {
	fmt.Fprintf(p.s.out, "[%s] %s\n", kind, message)
}
