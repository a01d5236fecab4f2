package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/bethropolis/quill/internal/app"
	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/markdown"
	"github.com/bethropolis/quill/internal/preview"
)

// cli carries state shared by the subcommands.
type cli struct {
	flags     config.Flags
	cfg       *config.Config
	logCloser io.Closer

	useClipboard bool
	strict       bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Compose formatted messages in markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logCloser != nil {
				c.logCloser.Close()
			}
		},
	}
	c.flags.DefineFlags(root.PersistentFlags())

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse markdown into text and entities (JSON)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runParse,
	}
	parseCmd.Flags().BoolVar(&c.strict, "strict", false, "Fail on malformed markdown instead of taking it literally")
	parseCmd.Flags().BoolVar(&c.useClipboard, "clipboard", false, "Read the markdown from the system clipboard")

	formatCmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Serialize text and entities (JSON) back into markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runFormat,
	}
	formatCmd.Flags().BoolVar(&c.useClipboard, "clipboard", false, "Also copy the markdown to the system clipboard")

	statsCmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Count characters, words and formatting of markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runStats,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Show markdown formatted in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runPreview,
	}

	root.AddCommand(parseCmd, formatCmd, statsCmd, previewCmd)
	return root
}

// setup loads the configuration and starts logging.
func (c *cli) setup() error {
	cfg, err := config.LoadConfig(c.flags.ConfigPath(), &c.flags)
	if err != nil {
		// Defaults are still usable; report once logging is up.
		defer logger.Warnf("Config: %v; using defaults", err)
	}
	c.cfg = cfg

	closer, err := logger.Setup(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger setup failed: %w", err)
	}
	c.logCloser = closer
	logger.Debugf("Starting %s", config.AppName)
	return nil
}

// readInput returns the contents of the file in args, or of stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(b), nil
}

// readMarkdown reads markdown input, dropping one trailing newline that
// editors and shells add.
func (c *cli) readMarkdown(cmd *cobra.Command, args []string) (string, error) {
	if c.useClipboard {
		s, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("reading clipboard: %w", err)
		}
		return s, nil
	}
	s, err := readInput(cmd, args)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(s, "\n"), nil
}

func (c *cli) runParse(cmd *cobra.Command, args []string) error {
	md, err := c.readMarkdown(cmd, args)
	if err != nil {
		return err
	}
	parser := markdown.NewParser(c.cfg.Limits())
	var ft entity.FormattedText
	if c.strict {
		if ft, err = parser.ParseStrict(md); err != nil {
			return err
		}
	} else {
		ft = parser.Parse(md)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(ft)
}

func (c *cli) runFormat(cmd *cobra.Command, args []string) error {
	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	var ft entity.FormattedText
	if err := json.Unmarshal([]byte(in), &ft); err != nil {
		return fmt.Errorf("decoding formatted text: %w", err)
	}
	if err := ft.Validate(); err != nil {
		return err
	}
	md := markdown.Serialize(ft)
	if c.useClipboard {
		if err := clipboard.WriteAll(md); err != nil {
			return fmt.Errorf("writing clipboard: %w", err)
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), md)
	return err
}

// newSession builds an app holding the markdown input.
func (c *cli) newSession(cmd *cobra.Command, args []string) (*app.App, error) {
	md, err := c.readMarkdown(cmd, args)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(c.cfg)
	if err != nil {
		return nil, err
	}
	a.Composer().SetMarkdown(md)
	return a, nil
}

func (c *cli) runStats(cmd *cobra.Command, args []string) error {
	a, err := c.newSession(cmd, args)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.ExecuteCommand("stats", nil); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), a.StatusMessage())
	return err
}

func (c *cli) runPreview(cmd *cobra.Command, args []string) error {
	a, err := c.newSession(cmd, args)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.ExecuteCommand("stats", nil); err != nil {
		return err
	}

	ui, err := preview.New()
	if err != nil {
		return err
	}
	defer ui.Close()
	a.Preview(ui)
	return nil
}
