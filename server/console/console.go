// Package console implements a minimal line-oriented admin console: list,
// kick and stop against a running Server. It is not a scripting surface —
// there is no parameter grammar, no tab-completable world queries, just
// three fixed verbs an operator types at a terminal.
package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/riftcraft/rift/server"
	"github.com/riftcraft/rift/server/client"
)

const (
	defaultPromptPrefix = "> "
	maxHistoryEntries   = 128
)

// Console reads commands from an io.Reader (defaulting to os.Stdin) and
// executes them against the provided Server.
type Console struct {
	srv     *server.Server
	log     *slog.Logger
	reader  io.Reader
	history []string
}

// New returns a Console bound to srv. The console reads from os.Stdin and
// logs command output through log.
func New(srv *server.Server, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{srv: srv, log: log, reader: os.Stdin}
}

// WithReader sets a custom reader for the console input, so tests can drive
// it without a real terminal.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// Run consumes commands until ctx is cancelled or the reader reaches EOF.
// Interactive use (the default os.Stdin reader) gets a completion-enabled
// prompt; any other reader falls back to a plain line scanner.
func (c *Console) Run(ctx context.Context) {
	if c.reader != os.Stdin {
		c.runScanner(ctx)
		return
	}
	c.runInteractive(ctx)
}

func (c *Console) runScanner(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "err", err)
			}
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.execute(line)
	}
}

func (c *Console) runInteractive(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := prompt.Input(defaultPromptPrefix, c.complete,
			prompt.OptionTitle("Rift Console"),
			prompt.OptionHistory(c.history),
			prompt.OptionPrefix(defaultPromptPrefix),
			prompt.OptionCompletionOnDown(),
			prompt.OptionMaxSuggestion(12),
		)

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c.execute(line)
	}
}

func (c *Console) execute(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	c.history = append(c.history, line)
	if len(c.history) > maxHistoryEntries {
		c.history = c.history[len(c.history)-maxHistoryEntries:]
	}

	switch strings.ToLower(fields[0]) {
	case "list":
		c.list()
	case "kick":
		if len(fields) < 2 {
			c.log.Error("usage: kick <player>")
			return
		}
		c.kick(strings.Join(fields[1:], " "))
	case "stop":
		c.log.Info("stopping server")
		c.srv.Stop()
	default:
		c.log.Error("unknown command", "command", fields[0])
	}
}

func (c *Console) list() {
	names := c.playerNames()
	c.log.Info("players online", "count", len(names), "players", strings.Join(names, ", "))
}

func (c *Console) kick(name string) {
	var found bool
	c.srv.Clients.Each(func(_ client.Id, cl *client.Client) bool {
		if strings.EqualFold(cl.Username, name) {
			cl.Disconnect("kicked from server")
			found = true
			return false
		}
		return true
	})
	if !found {
		c.log.Error("no such player", "player", name)
	}
}

func (c *Console) playerNames() []string {
	var names []string
	c.srv.Clients.Each(func(_ client.Id, cl *client.Client) bool {
		names = append(names, cl.Username)
		return true
	})
	sort.Strings(names)
	return names
}

var consoleCommands = []string{"list", "kick", "stop"}

func (c *Console) complete(doc prompt.Document) []prompt.Suggest {
	textBefore := doc.TextBeforeCursor()
	segments := strings.Fields(textBefore)
	hasTrailingSpace := strings.HasSuffix(textBefore, " ")

	if len(segments) == 0 || (len(segments) == 1 && !hasTrailingSpace) {
		word := doc.GetWordBeforeCursor()
		suggestions := make([]prompt.Suggest, 0, len(consoleCommands))
		for _, name := range consoleCommands {
			suggestions = append(suggestions, prompt.Suggest{Text: name})
		}
		return prompt.FilterHasPrefix(suggestions, word, true)
	}

	if strings.EqualFold(segments[0], "kick") {
		word := doc.GetWordBeforeCursor()
		names := c.playerNames()
		suggestions := make([]prompt.Suggest, 0, len(names))
		for _, name := range names {
			suggestions = append(suggestions, prompt.Suggest{Text: name})
		}
		return prompt.FilterHasPrefix(suggestions, word, true)
	}

	return nil
}
