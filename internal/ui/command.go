package ui

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArg     = errors.New("missing argument")
)

type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdQuit
	CmdTheme
	CmdOpen
	CmdNew
	CmdFind
	CmdBack
)

// Command is one line typed after ':'.
type Command struct {
	Kind CommandKind
	Arg  string
}

var commandNames = map[string]CommandKind{
	"q":     CmdQuit,
	"quit":  CmdQuit,
	"theme": CmdTheme,
	"open":  CmdOpen,
	"o":     CmdOpen,
	"new":   CmdNew,
	"find":  CmdFind,
	"f":     CmdFind,
	"back":  CmdBack,
	"b":     CmdBack,
}

// ParseCommand parses a command line. An empty line is CmdNone.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: CmdNone}, nil
	}
	name, arg, _ := strings.Cut(line, " ")
	kind, ok := commandNames[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	arg = strings.TrimSpace(arg)
	switch kind {
	case CmdTheme, CmdOpen, CmdNew, CmdFind:
		if arg == "" {
			return Command{}, fmt.Errorf("%w: %s needs a name", ErrMissingArg, name)
		}
	}
	return Command{Kind: kind, Arg: arg}, nil
}
