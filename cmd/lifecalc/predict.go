package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lifecalc/internal/analysis"
	"lifecalc/internal/calc"
	"lifecalc/internal/logging"
	"lifecalc/internal/nav"
	"lifecalc/internal/observability"
)

type predictOptions struct {
	fields  []string
	output  string
	noDelay bool
}

func (c *CLI) newPredictCommand() *cobra.Command {
	opts := &predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict [category]",
		Short: "Run one analysis (health, money, career or daily)",
		Long: `Run the same analysis as the Analyze button and print the result.

Fields not given with --field fall back to their defaults, exactly as an empty
form does. Without a category a picker is shown when running in a terminal.`,
		Example: "  lifecalc predict health --field weight=82 --field height=180\n  lifecalc predict money --field principal=1000 --no-delay --output yaml",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := c.ensureContainer(false)
			if err != nil {
				return err
			}
			category, err := c.resolveCategory(args)
			if err != nil {
				return err
			}
			logger := container.Log("predict")
			if !c.verbose {
				logger = logging.Multi(logger, noticeLogger{out: cmd.ErrOrStderr()})
			}
			return runPredict(cmd, container, logger, category, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.fields, "field", "f", nil, "Field value as id=value (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text or yaml")
	cmd.Flags().BoolVar(&opts.noDelay, "no-delay", false, "Skip the analyze delay")

	return cmd
}

func (c *CLI) resolveCategory(args []string) (string, error) {
	if len(args) == 1 {
		page, ok := nav.ParsePage(strings.ToLower(strings.TrimSpace(args[0])))
		if !ok || !nav.IsCategory(page) {
			return "", fmt.Errorf("unknown category %q (want one of %s)", args[0], strings.Join(calc.Categories(), ", "))
		}
		return string(page), nil
	}
	if !isTTY(c.stdin, c.stdout) {
		return "", fmt.Errorf("category required (one of %s)", strings.Join(calc.Categories(), ", "))
	}

	prompt := promptui.Select{
		Label: "Category",
		Items: calc.Categories(),
	}
	_, category, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("category selection cancelled: %w", err)
	}
	return category, nil
}

// parseFieldFlags turns id=value pairs into a form. Ids the category does not
// know about are reported so the caller can warn.
func parseFieldFlags(category string, pairs []string) (map[string]string, []string, error) {
	known := make(map[string]bool)
	for _, spec := range calc.Fields(category) {
		known[spec.ID] = true
	}

	fields := make(map[string]string, len(pairs))
	var unknown []string
	for _, pair := range pairs {
		id, value, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, nil, fmt.Errorf("invalid --field %q, expected id=value", pair)
		}
		if !known[id] {
			unknown = append(unknown, id)
		}
		fields[id] = strings.TrimSpace(value)
	}
	return fields, unknown, nil
}

func runPredict(cmd *cobra.Command, container *Container, logger logging.Logger, category string, opts *predictOptions) error {
	if opts.output != "text" && opts.output != "yaml" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	fields, unknown, err := parseFieldFlags(category, opts.fields)
	if err != nil {
		return err
	}
	for _, id := range unknown {
		logger.Warn("field %q is not used by %s", id, category)
	}

	req := analysis.NewRequest(category, fields)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = observability.ContextWithRequestToken(ctx, req.Token)

	requestLogger := logging.FromContext(ctx, logger)
	for _, fallback := range calc.Fallbacks(category, req.Fields) {
		requestLogger.Debug("%v", fallback)
	}

	delay := container.Config.AnalyzeDelay
	if opts.noDelay {
		delay = 0
	}

	if delay > 0 && opts.output == "text" {
		fmt.Fprintln(cmd.ErrOrStderr(), gray("Analyzing..."))
	}
	res, err := analysis.Run(ctx, delay, req)
	if err != nil {
		container.Metrics.RecordAnalysis(ctx, category, observability.OutcomeDiscarded)
		return fmt.Errorf("analysis cancelled: %w", err)
	}
	container.Metrics.RecordAnalysis(ctx, category, observability.OutcomeApplied)
	container.Logger.InfoContext(ctx, "analysis complete", "category", category, "score", res.Score)

	if opts.output == "yaml" {
		return writeYAML(cmd.OutOrStdout(), res)
	}
	return writeReport(cmd.OutOrStdout(), res)
}

func writeYAML(out io.Writer, res calc.Result) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}

func writeReport(out io.Writer, res calc.Result) error {
	score := formatScore(res.Score)
	switch calc.Band(res.Score) {
	case calc.BandHigh:
		score = cyan(score)
	case calc.BandMid:
		score = yellow(score)
	default:
		score = red(score)
	}

	fmt.Fprintf(out, "%s %s\n", bold("Final Result:"), score)
	fmt.Fprintf(out, "%s %s\n\n", gray("Formula Curve"), blue(sparkline(calc.Curve(res.Category))))
	_, err := out.Write(markdown.Render(resultMarkdown(res), 80, 2))
	return err
}

// noticeLogger shows warnings and errors on the terminal when --verbose is off.
type noticeLogger struct {
	out io.Writer
}

func (noticeLogger) Debug(string, ...any) {}
func (noticeLogger) Info(string, ...any)  {}

func (l noticeLogger) Warn(format string, args ...any) {
	fmt.Fprintln(l.out, yellow("warning: "+fmt.Sprintf(format, args...)))
}

func (l noticeLogger) Error(format string, args ...any) {
	fmt.Fprintln(l.out, red("error: "+fmt.Sprintf(format, args...)))
}
