// Command fortransducer compiles print-transducer programs into QF
// interpretations, evaluates them, pulls back post-conditions, and
// discharges the result to external SMT/MSO solvers.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Hal-lucin-ogen8/fortransducer"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fortransducer",
		Short:         "compile print-transducer programs into QF interpretations of finite words",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newPullbackCmd(), newEmitCmd(), newSolveCmd())
	return root
}

func compileFromFile(path, alphabet string) (*fortransducer.Interpretation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	prog, err := fortransducer.ParseBytes(path, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	qf := fortransducer.Compile(prog, []rune(alphabet))
	if err := qf.Validate(); err != nil {
		return nil, fmt.Errorf("synthesizing QF interpretation for %s: %w", path, err)
	}
	return qf, nil
}

func readPostCondition(path string) (fortransducer.OutputFormula, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := fortransducer.ParsePostCondition(path, string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing post-condition %s: %w", path, err)
	}
	return f, nil
}

func readWord(flagWord string) (string, error) {
	if flagWord != "" {
		return flagWord, nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading word from stdin: %w", err)
		}
		return "", nil
	}
	return scanner.Text(), nil
}

func newRunCmd() *cobra.Command {
	var word, alphabet string
	var debug bool
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "evaluate a program against an input word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qf, err := compileFromFile(args[0], alphabet)
			if err != nil {
				return err
			}
			if debug {
				qf.Describe(cmd.OutOrStdout())
			}
			in, err := readWord(word)
			if err != nil {
				return err
			}
			out, err := qf.Evaluate(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&word, "word", "", "input word (default: one line from stdin)")
	cmd.Flags().StringVar(&alphabet, "alphabet", "abc#", "output alphabet")
	cmd.Flags().BoolVar(&debug, "debug", false, "dump the compiled labels, letter formulas, and order formulas")
	return cmd
}

func newPullbackCmd() *cobra.Command {
	var post, alphabet string
	cmd := &cobra.Command{
		Use:   "pullback <script>",
		Short: "pull an output-level post-condition back through the compiled program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qf, err := compileFromFile(args[0], alphabet)
			if err != nil {
				return err
			}
			psi, err := readPostCondition(post)
			if err != nil {
				return err
			}
			f := fortransducer.Pullback(psi, qf)
			fmt.Fprintln(cmd.OutOrStdout(), fortransducer.ToSMTLib(f))
			return nil
		},
	}
	cmd.Flags().StringVar(&post, "post", "", "path to the output-level post-condition")
	cmd.Flags().StringVar(&alphabet, "alphabet", "abc#", "output alphabet")
	cmd.MarkFlagRequired("post")
	return cmd
}

func newEmitCmd() *cobra.Command {
	var post, alphabet, backendName string
	cmd := &cobra.Command{
		Use:   "emit <script>",
		Short: "pull back a post-condition and render it in a solver's surface syntax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qf, err := compileFromFile(args[0], alphabet)
			if err != nil {
				return err
			}
			psi, err := readPostCondition(post)
			if err != nil {
				return err
			}
			backend, err := fortransducer.ParseBackend(backendName)
			if err != nil {
				return err
			}
			f := fortransducer.Pullback(psi, qf)
			var rendered string
			switch backend {
			case fortransducer.AltErgo:
				rendered = fortransducer.ToAltErgo(f)
			case fortransducer.Z3, fortransducer.CVC5:
				rendered = fortransducer.ToSMTLib(f)
			case fortransducer.MONA:
				rendered = fortransducer.ToMona(f)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().StringVar(&post, "post", "", "path to the output-level post-condition")
	cmd.Flags().StringVar(&alphabet, "alphabet", "abc#", "output alphabet")
	cmd.Flags().StringVar(&backendName, "backend", "", "alt-ergo|z3|cvc5|mona")
	cmd.MarkFlagRequired("post")
	cmd.MarkFlagRequired("backend")
	return cmd
}

func newSolveCmd() *cobra.Command {
	var post, alphabet, backendName string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "solve <script>",
		Short: "pull back a post-condition and discharge it to an external solver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qf, err := compileFromFile(args[0], alphabet)
			if err != nil {
				return err
			}
			psi, err := readPostCondition(post)
			if err != nil {
				return err
			}
			backend, err := fortransducer.ParseBackend(backendName)
			if err != nil {
				return err
			}
			f := fortransducer.Pullback(psi, qf)

			ctx := context.Background()
			var cancel context.CancelFunc
			if timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			verdict, err := fortransducer.Solve(ctx, fortransducer.DefaultRunner, backend, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), verdict)
			return nil
		},
	}
	cmd.Flags().StringVar(&post, "post", "", "path to the output-level post-condition")
	cmd.Flags().StringVar(&alphabet, "alphabet", "abc#", "output alphabet")
	cmd.Flags().StringVar(&backendName, "backend", "", "alt-ergo|z3|cvc5|mona")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "solver timeout (0 = none)")
	cmd.MarkFlagRequired("post")
	cmd.MarkFlagRequired("backend")
	return cmd
}
