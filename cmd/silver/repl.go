package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"silver/internal/driver"
	"silver/internal/symbols"
	"silver/internal/version"
)

const replPrompt = "» "

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Silver session",
	Long: `Repl reads one expression per line and prints its value.
Variables persist between lines. Lines starting with # are commands; see #help.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().String("session", "", "load variables from and save them to this file")
	replCmd.Flags().Bool("tree", false, "print the syntax tree of every line")
}

// lineReader is satisfied by *term.Terminal.
type lineReader interface {
	ReadLine() (string, error)
}

type scanReader struct {
	sc *bufio.Scanner
}

func (r scanReader) ReadLine() (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type repl struct {
	store          *symbols.Store
	out            io.Writer
	errOut         io.Writer
	maxDiagnostics int
	diagFormat     string
	showTree       bool
}

func runRepl(cmd *cobra.Command, args []string) error {
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}
	sessionPath, err := cmd.Flags().GetString("session")
	if err != nil {
		return fmt.Errorf("failed to get session flag: %w", err)
	}
	showTree, err := cmd.Flags().GetBool("tree")
	if err != nil {
		return fmt.Errorf("failed to get tree flag: %w", err)
	}

	store := symbols.NewStore()
	if sessionPath != "" {
		if store, err = driver.LoadSession(sessionPath); err != nil {
			return err
		}
	}

	r := &repl{
		store:          store,
		maxDiagnostics: cli.maxDiagnostics,
		diagFormat:     cli.diagFormat,
		showTree:       showTree,
	}

	var in lineReader
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		fd := int(os.Stdin.Fd()) // #nosec G115 -- fd fits in int
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, oldState) }()

		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}, replPrompt)
		if width, height, err := term.GetSize(fd); err == nil {
			_ = t.SetSize(width, height)
		}
		r.out, r.errOut = t, t
		in = t
		if !cli.quiet {
			fmt.Fprintf(t, "%s\ntype #help for commands, Ctrl-D to exit\n", version.Banner())
		}
	} else {
		r.out, r.errOut = cmd.OutOrStdout(), os.Stderr
		in = scanReader{sc: bufio.NewScanner(os.Stdin)}
	}

	loopErr := r.loop(cmd.Context(), in)
	if sessionPath != "" {
		if err := driver.SaveSession(sessionPath, r.store); err != nil {
			return errors.Join(loopErr, err)
		}
	}
	return loopErr
}

func (r *repl) loop(ctx context.Context, in lineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if r.handle(ctx, line) {
			return nil
		}
	}
}

// handle runs one input line and reports whether the session should end.
func (r *repl) handle(ctx context.Context, line string) bool {
	text := strings.TrimSpace(line)
	if text == "" {
		return false
	}
	if strings.HasPrefix(text, "#") {
		return r.command(text)
	}

	res := driver.EvalText(ctx, "<repl>", line, r.store, driver.Options{MaxDiagnostics: r.maxDiagnostics})
	if r.showTree {
		if err := res.Tree.PrettyPrint(r.out); err != nil {
			fmt.Fprintln(r.errOut, "error:", err)
		}
	}
	if err := printDiagnostics(r.errOut, res.Bag, res.FileSet, r.diagFormat); err != nil {
		fmt.Fprintln(r.errOut, "error:", err)
	}
	if res.OK {
		fmt.Fprintln(r.out, res.Value.String())
	}
	return false
}

func (r *repl) command(text string) bool {
	fields := strings.Fields(text)
	switch fields[0] {
	case "#quit", "#exit":
		return true
	case "#vars":
		bindings := r.store.Bindings()
		if len(bindings) == 0 {
			fmt.Fprintln(r.out, "no variables")
		}
		for _, b := range bindings {
			fmt.Fprintf(r.out, "%s = %s\n", b.Var, b.Value)
		}
	case "#tree":
		r.showTree = !r.showTree
		if r.showTree {
			fmt.Fprintln(r.out, "syntax trees on")
		} else {
			fmt.Fprintln(r.out, "syntax trees off")
		}
	case "#reset":
		n := r.store.Len()
		r.store = symbols.NewStore()
		fmt.Fprintf(r.out, "cleared %d variables\n", n)
	case "#unset":
		if len(fields) < 2 {
			fmt.Fprintln(r.errOut, "usage: #unset name...")
			break
		}
		for _, name := range fields[1:] {
			if r.store.Delete(name) {
				fmt.Fprintf(r.out, "removed %s\n", name)
			} else {
				fmt.Fprintf(r.errOut, "no variable %s\n", name)
			}
		}
	case "#help":
		fmt.Fprint(r.out, `#vars          list variables
#unset name... forget the named variables
#tree          toggle syntax tree output
#reset         forget all variables
#quit          leave the session
`)
	default:
		fmt.Fprintf(r.errOut, "unknown command %s (try #help)\n", text)
	}
	return false
}
