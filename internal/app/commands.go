package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/logger"
)

// registerAppCommands registers the built-in commands.
func registerAppCommands(app *App) {
	api := app.composerAPI
	c := app.composer

	builtins := map[string]func(args []string) error{
		"markdown": func(args []string) error {
			api.SetStatusMessage("%s", c.Markdown())
			return nil
		},
		"set": func(args []string) error {
			c.SetMarkdown(strings.Join(args, " "))
			return nil
		},
		"undo": func(args []string) error {
			cur, ok := c.Undo()
			if !ok {
				api.SetStatusMessage("Nothing to undo")
				return nil
			}
			api.SetStatusMessage("Undo: selection %d+%d", cur.Offset, cur.Length)
			return nil
		},
		"redo": func(args []string) error {
			cur, ok := c.Redo()
			if !ok {
				api.SetStatusMessage("Nothing to redo")
				return nil
			}
			api.SetStatusMessage("Redo: selection %d+%d", cur.Offset, cur.Length)
			return nil
		},
		// format <type> <offset> <length> toggles a plain formatting type.
		"format": func(args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("usage: format <type> <offset> <length>")
			}
			t, err := entity.ParseType(args[0])
			if err != nil {
				return err
			}
			offset, length, err := parseRange(args[1], args[2])
			if err != nil {
				return err
			}
			_, active := c.ActiveFormats(offset, length)[t]
			if _, err := c.Toggle(entity.New(t, offset, length), !active); err != nil {
				return err
			}
			if active {
				api.SetStatusMessage("Removed %s", t)
			} else {
				api.SetStatusMessage("Applied %s", t)
			}
			return nil
		},
		// link <offset> <length> [url] sets or, without a url, removes a link.
		"link": func(args []string) error {
			if len(args) < 2 || len(args) > 3 {
				return fmt.Errorf("usage: link <offset> <length> [url]")
			}
			offset, length, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}
			url := ""
			if len(args) == 3 {
				url = args[2]
			}
			if _, err := c.ToggleLink(offset, length, url); err != nil {
				return err
			}
			return nil
		},
		"theme": func(args []string) error {
			api.SetStatusMessage("Current theme: %s", app.activeTheme.Name)
			return nil
		},
		"clear": func(args []string) error {
			c.Reset()
			return nil
		},
	}

	for name, fn := range builtins {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register '%s' command: %v", name, err)
		}
	}
}

func parseRange(offsetArg, lengthArg string) (int, int, error) {
	offset, err := strconv.Atoi(offsetArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", offsetArg, err)
	}
	length, err := strconv.Atoi(lengthArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid length %q: %w", lengthArg, err)
	}
	return offset, length, nil
}
