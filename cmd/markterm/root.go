package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"pkt.systems/version"

	"github.com/avi1989/markterm"
)

// colorValue is a pflag.Value that only accepts auto, always or never.
type colorValue struct {
	choice *markterm.ColorChoice
}

func (c colorValue) String() string {
	if c.choice == nil {
		return markterm.ColorAuto.String()
	}
	return c.choice.String()
}

func (c colorValue) Set(s string) error {
	choice, err := markterm.ParseColorChoice(s)
	if err != nil {
		return err
	}
	*c.choice = choice
	return nil
}

func (colorValue) Type() string { return "when" }

type rootOptions struct {
	color      markterm.ColorChoice
	theme      string
	themeFile  string
	width      int
	keepFront  bool
	listThemes bool
	configPath string
	verbose    bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "markterm [flags] [paths|globs|urls...]",
		Short:         "Render Markdown to the terminal",
		Long:          "markterm renders Markdown with true-color styles and OSC 8 hyperlinks.\nWith no input, Markdown is read from stdin.",
		Version:       version.Current(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			err := run(cmd, args, opts, stdin, stdout)
			if err != nil {
				logger.Error(err.Error())
			}
			return err
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(fmt.Sprintf("markterm %s\n", version.Current()))

	flags := cmd.Flags()
	flags.VarP(colorValue{&opts.color}, "color", "c", "Color output: auto|always|never")
	flags.StringVarP(&opts.theme, "theme", "t", "auto", "Theme: auto|dark|light")
	flags.StringVar(&opts.themeFile, "theme-file", "", "TOML file overriding theme slots")
	flags.IntVarP(&opts.width, "width", "w", 0, "Wrap paragraphs at this width (0 disables wrapping)")
	flags.BoolVar(&opts.keepFront, "keep-front-matter", false, "Render front matter instead of stripping it")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List built-in themes")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/markterm/config.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts rootOptions, stdin io.Reader, stdout io.Writer) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.listThemes {
		for _, name := range markterm.AvailableThemes() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	cfg, err := loadConfig(opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}

	colorize := cfg.Color.Colorize(stdout)
	theme, err := selectTheme(ctx, cfg, stdout)
	if err != nil {
		return err
	}
	logger.Debug("render settings", "theme", theme.Name, "color", cfg.Color, "colorize", colorize, "width", cfg.Width)

	inputs, err := expandInputs(args)
	if err != nil {
		return err
	}

	renderOpts := []markterm.RenderOption{
		markterm.WithWidth(cfg.Width),
		markterm.WithStripFrontMatter(!cfg.KeepFrontMatter),
	}
	out := bufio.NewWriter(stdout)
	err = renderInputs(ctx, inputs, stdin, out, &theme, colorize, renderOpts)
	if flushErr := out.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("write output: %w", flushErr)
	}
	return err
}

// selectTheme resolves the configured theme name and applies the theme file
// on top of it. "auto" asks the terminal on stdout.
func selectTheme(ctx context.Context, cfg config, stdout io.Writer) (markterm.Theme, error) {
	var base markterm.Theme
	switch cfg.Theme {
	case "", "auto":
		base = markterm.ResolveTheme(ctx, markterm.TerminalDetector{Output: stdout})
	default:
		t, ok := markterm.ThemeByName(cfg.Theme)
		if !ok {
			return markterm.Theme{}, fmt.Errorf("%w %q: expected auto|%s", markterm.ErrUnknownTheme, cfg.Theme, strings.Join(markterm.AvailableThemes(), "|"))
		}
		base = t
	}
	if cfg.ThemeFile == "" {
		return base, nil
	}
	return markterm.LoadThemeFile(cfg.ThemeFile, base)
}

func renderInputs(ctx context.Context, inputs []input, stdin io.Reader, w io.Writer, theme *markterm.Theme, colorize bool, opts []markterm.RenderOption) error {
	logger := loggerFromContext(ctx)
	if len(inputs) == 0 {
		logger.Debug("reading stdin")
		src, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return markterm.RenderText(string(src), theme, w, colorize, opts...)
	}

	choice := markterm.ColorNever
	if colorize {
		choice = markterm.ColorAlways
	}
	for _, in := range inputs {
		logger.Debug("rendering", "input", in.name, "kind", in.kind)
		var err error
		switch in.kind {
		case inputURL:
			err = markterm.RenderURL(ctx, markterm.URLRenderRequest{
				URL:     in.name,
				Writer:  w,
				Theme:   theme,
				Color:   choice,
				Options: opts,
			})
		default:
			err = markterm.RenderFile(in.name, theme, w, colorize, opts...)
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("file not found: %s", in.name)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
