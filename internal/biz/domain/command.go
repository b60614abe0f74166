package domain

import "strings"

// Command identifies which handler an inbound event is dispatched to.
type Command int

const (
	// CmdNone means no handler: an unrecognized slash command is silently
	// ignored rather than treated as chat text.
	CmdNone Command = iota
	CmdStart
	CmdHelp
	CmdLast
	CmdPlainText
)

// Keyword matching is case-sensitive: "/Start" is not a command.
var commands = map[string]Command{
	"/start": CmdStart,
	"/help":  CmdHelp,
	"/last":  CmdLast,
}

// Classify maps raw event text to a command and the whitespace-split
// arguments following the keyword. Text that does not start with a slash is
// plain chat text. Every input matches at most one command, evaluated here
// in a single lookup.
func Classify(text string) (Command, []string) {
	if !strings.HasPrefix(text, "/") {
		return CmdPlainText, nil
	}
	fields := strings.Fields(text)
	if cmd, ok := commands[fields[0]]; ok {
		return cmd, fields[1:]
	}
	return CmdNone, nil
}
