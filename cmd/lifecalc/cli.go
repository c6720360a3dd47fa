package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	apperrors "lifecalc/internal/errors"
)

// Set by -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// isTTY reports whether both ends of the session are a terminal.
func isTTY(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok {
		return false
	}
	outFile, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(inFile.Fd())) && term.IsTerminal(int(outFile.Fd()))
}

// CLI holds the command line state shared by the cobra commands.
type CLI struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile string
	verbose    bool

	container *Container
}

// NewCLI creates a CLI bound to the given streams.
func NewCLI(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	return &CLI{stdin: stdin, stdout: stdout, stderr: stderr}
}

// Run executes the command line args and releases the container afterwards.
func (c *CLI) Run(args []string) error {
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	err := root.Execute()
	if err != nil {
		c.container.Log("cli").Debug("command failed (%s): %v", apperrors.Classify(err), err)
	}
	if cleanupErr := c.container.Cleanup(); cleanupErr != nil && err == nil {
		err = cleanupErr
	}
	c.container = nil
	return err
}

func (c *CLI) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lifecalc",
		Short:         "Life calculator: health, money and career projections",
		Long:          "LifeCalc AI estimates health, wealth and career outcomes and ships a keypad calculator.\nRun without arguments in a terminal to open the interactive app.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTTY(c.stdin, c.stdout) {
				return cmd.Help()
			}
			container, err := c.ensureContainer(true)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), container)
		},
	}

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "Config file (default ./lifecalc.yaml or ~/.lifecalc/lifecalc.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(c.newCalcCommand())
	root.AddCommand(c.newPredictCommand())
	root.AddCommand(c.newConfigCommand())
	root.AddCommand(newVersionCommand())

	return root
}

// ensureContainer builds the container on first use. The TUI owns the
// terminal, so its logs only go to the configured file.
func (c *CLI) ensureContainer(tui bool) (*Container, error) {
	if c.container != nil {
		return c.container, nil
	}

	var logOutput io.Writer
	if c.verbose && !tui {
		logOutput = c.stderr
	}
	container, err := buildContainer(containerOptions{
		configFile: c.configFile,
		verbose:    c.verbose,
		logOutput:  logOutput,
	})
	if err != nil {
		return nil, err
	}
	c.container = container
	return container, nil
}

func (c *CLI) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := c.ensureContainer(false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if source := container.Config.Source; source != "" {
				fmt.Fprintln(out, gray("# loaded from "+source))
			}
			data, err := yaml.Marshal(container.Config)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	})

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lifecalc %s (%s)\n", version, commit)
		},
	}
}
