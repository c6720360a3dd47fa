package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"lifecalc/internal/expr"
	"lifecalc/internal/logging"
)

func (c *CLI) newCalcCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate an arithmetic expression, or start a calculator prompt",
		Long: `Evaluate an expression using + - * / ^ √ and parentheses.

With no expression an interactive prompt starts. At the prompt, "keys 7 + 3 ="
replays keypad presses (C, DEL, =, √ and the digit/operator keys).`,
		Example: "  lifecalc calc '2+3*4'\n  lifecalc calc '√(16)+1'\n  lifecalc calc -2^2",
		// Expressions such as -2+3 would otherwise be read as shorthand flags.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.InheritedFlags()
			flags.Usage = func() {}
			if err := flags.Parse(guardNegativeOperand(args)); err != nil {
				if errors.Is(err, pflag.ErrHelp) {
					return cmd.Help()
				}
				return err
			}
			args = flags.Args()

			container, err := c.ensureContainer(false)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return runCalcREPL(cmd, container)
			}

			expression := strings.Join(args, " ")
			value, err := container.Evaluator.Eval(expression)
			container.Metrics.RecordEvaluation(cmd.Context(), err == nil)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), expr.ErrorToken)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), expr.FormatNumber(value))
			return nil
		},
	}
}

// guardNegativeOperand inserts "--" before the first argument that starts
// with a minus sign followed by an operand, so flag parsing stops there.
func guardNegativeOperand(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if negativeOperand(arg) {
			guarded := make([]string, 0, len(args)+1)
			guarded = append(guarded, args[:i]...)
			guarded = append(guarded, "--")
			return append(guarded, args[i:]...)
		}
	}
	return args
}

func negativeOperand(arg string) bool {
	rest, ok := strings.CutPrefix(arg, "-")
	if !ok || rest == "" {
		return false
	}
	return strings.ContainsAny(rest[:1], "0123456789.(") || strings.HasPrefix(rest, "√")
}

// runCalcREPL reads expressions line by line until exit or EOF.
func runCalcREPL(cmd *cobra.Command, container *Container) error {
	out := cmd.OutOrStdout()
	logger := container.Log("calc")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("calc> "),
		HistoryFile:       container.Config.Calculator.HistoryPath(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		UniqueEditLine:    true,

		Stdin:  readline.NewCancelableStdin(cmd.InOrStdin()),
		Stdout: out,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(out, bold("Advanced Calc"))
	fmt.Fprintln(out, gray(`Type an expression, "keys <presses>" for the keypad, or "exit".`))

	keypad := expr.NewKeypad(container.Evaluator)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit" || line == "q":
			return nil
		case strings.HasPrefix(line, "keys"):
			pressKeys(cmd, container, keypad, strings.TrimSpace(strings.TrimPrefix(line, "keys")))
			fmt.Fprintln(out, renderKeypadLine(keypad))
		default:
			fmt.Fprintln(out, evaluateLine(cmd, container, logger, line))
		}
	}
}

func pressKeys(cmd *cobra.Command, container *Container, keypad *expr.Keypad, seq string) {
	for _, key := range expr.SplitKeys(seq) {
		if evaluated, ok := keypad.Press(key); evaluated {
			container.Metrics.RecordEvaluation(cmd.Context(), ok)
		}
	}
}

func evaluateLine(cmd *cobra.Command, container *Container, logger logging.Logger, line string) string {
	value, err := container.Evaluator.Eval(line)
	container.Metrics.RecordEvaluation(cmd.Context(), err == nil)
	if err != nil {
		logger.Debug("evaluation failed: %v", err)
		return red(expr.ErrorToken)
	}
	return green(expr.FormatNumber(value))
}

func renderKeypadLine(keypad *expr.Keypad) string {
	display := keypad.Display()
	if keypad.Failed() {
		display = red(display)
	} else {
		display = green(display)
	}
	if equation := keypad.Equation(); equation != "" {
		return gray(equation) + " " + display
	}
	return display
}
