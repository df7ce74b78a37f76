package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/mpn-kit/mpn-go/pkg/component"
)

// shell is an interactive query loop over one engine session.
type shell struct {
	sess *session
	out  io.Writer
}

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive query shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "mpn> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				AutoComplete: readline.NewPrefixCompleter(
					readline.PcItem("classify"),
					readline.PcItem("as"),
					readline.PcItem("compare"),
					readline.PcItem("rank"),
					readline.PcItem("series"),
					readline.PcItem("package"),
					readline.PcItem("help"),
					readline.PcItem("quit"),
				),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			sh := &shell{sess: sess, out: rl.Stdout()}
			sh.printHelp()
			for {
				line, err := rl.Readline()
				if err != nil {
					if errors.Is(err, readline.ErrInterrupt) {
						continue
					}
					return nil
				}
				if sh.exec(line) {
					return nil
				}
			}
		},
	}
}

func (sh *shell) printHelp() {
	fmt.Fprintln(sh.out, `
Commands:
  classify <mpn>...           - Classify part numbers
  as <type> <mpn>             - Classify accepting only a type or its refinements
  compare <required> <cand>   - Explain a replacement decision
  rank <required> <cand>...   - Order admissible substitutes
  series <mpn>                - Print the series code
  package <mpn>               - Print the package designator
  help                        - Show this help
  quit                        - Exit`)
}

// exec runs one input line and reports whether the shell should exit.
func (sh *shell) exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "help", "?":
		sh.printHelp()

	case "classify", "c":
		if len(args) == 0 {
			fmt.Fprintln(sh.out, "Usage: classify <mpn>...")
			return false
		}
		for _, mpn := range args {
			res, err := sh.sess.Classify(mpn)
			formatResult(sh.out, mpn, res, err)
		}

	case "as":
		if len(args) != 2 {
			fmt.Fprintln(sh.out, "Usage: as <type> <mpn>")
			return false
		}
		res, err := sh.sess.ClassifyAs(args[1], component.Type(args[0]))
		formatResult(sh.out, args[1], res, err)

	case "compare", "cmp":
		if len(args) != 2 {
			fmt.Fprintln(sh.out, "Usage: compare <required> <candidate>")
			return false
		}
		v, err := sh.sess.Explain(args[0], args[1])
		if err != nil {
			fmt.Fprintf(sh.out, "Error: %v\n", err)
			return false
		}
		formatVerdict(sh.out, args[0], args[1], v)

	case "rank":
		if len(args) < 2 {
			fmt.Fprintln(sh.out, "Usage: rank <required> <candidate>...")
			return false
		}
		ranked, err := sh.sess.Rank(args[0], args[1:]...)
		if err != nil {
			fmt.Fprintf(sh.out, "Error: %v\n", err)
			return false
		}
		if len(ranked) == 0 {
			fmt.Fprintln(sh.out, "No admissible candidates")
		}
		for i, c := range ranked {
			fmt.Fprintf(sh.out, "%d. %s (distance %d)\n", i+1, c.MPN, c.Distance)
		}

	case "series", "package":
		if len(args) != 1 {
			fmt.Fprintf(sh.out, "Usage: %s <mpn>\n", cmd)
			return false
		}
		extract := sh.sess.ExtractSeries
		if cmd == "package" {
			extract = sh.sess.ExtractPackage
		}
		v, err := extract(args[0])
		switch {
		case err != nil:
			fmt.Fprintf(sh.out, "Error: %v\n", err)
		case v == "":
			fmt.Fprintln(sh.out, "(none)")
		default:
			fmt.Fprintln(sh.out, v)
		}

	case "quit", "exit", "q":
		fmt.Fprintln(sh.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(sh.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}
