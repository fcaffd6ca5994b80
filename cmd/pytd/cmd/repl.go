package cmd

import (
	"fmt"
	"strings"

	"github.com/lmorg/readline/v4"
	"github.com/spf13/cobra"

	"github.com/mvcisback/pytypedecl/internal/cli"
	"github.com/mvcisback/pytypedecl/internal/parser"
)

const (
	replPrompt = ">>> "
	replMore   = "... "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively parse declarations",
	Long: `Repl reads declarations from the terminal, parses each chunk, and
prints it back in canonical form or reports the diagnostic.

A line ending in a colon opens a block that runs until a blank line;
unclosed parentheses or angle brackets also continue onto the next
line. Leave with :quit or Ctrl-D.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	rl := readline.NewInstance()
	fmt.Printf("pytd %s (:quit to leave)\n", cli.Version)

	for {
		rl.SetPrompt(replPrompt)
		line, err := rl.Readline()
		if err != nil {
			// Ctrl-C and Ctrl-D both end the session.
			fmt.Println()
			return nil
		}
		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}
		chunk, err := readChunk(rl, line)
		if err != nil {
			fmt.Println()
			return nil
		}
		evalChunk(chunk)
	}
}

// readChunk collects continuation lines for first until the chunk is
// complete: brackets balanced, and a blank line after a block opener.
func readChunk(rl *readline.Instance, first string) (string, error) {
	chunk := first
	for openBrackets(chunk) > 0 {
		rl.SetPrompt(replMore)
		line, err := rl.Readline()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			return chunk, nil
		}
		chunk += "\n" + line
	}
	if !opensBlock(chunk) {
		return chunk, nil
	}
	for {
		rl.SetPrompt(replMore)
		line, err := rl.Readline()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			return chunk, nil
		}
		chunk += "\n" + line
	}
}

func evalChunk(chunk string) {
	mod, err := parser.Parse(chunk, "<repl>")
	if err != nil {
		report(err)
		return
	}
	fmt.Print(renderCanonical(mod))
}

// opensBlock reports whether the last line of chunk ends with a colon,
// which in pytd always introduces an indented body.
func opensBlock(chunk string) bool {
	lines := strings.Split(chunk, "\n")
	last := strings.TrimRight(lines[len(lines)-1], " \t")
	return strings.HasSuffix(last, ":")
}

// openBrackets counts unclosed ( and < pairs, skipping string
// literals, backtick names, comments, and the -> arrow.
func openBrackets(chunk string) int {
	depth := 0
	inString := false
	inBacktick := false
	inComment := false
	var prev byte
	for i := 0; i < len(chunk); i++ {
		c := chunk[i]
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case inString:
			if c == '"' && prev != '\\' {
				inString = false
			}
		case inBacktick:
			if c == '`' {
				inBacktick = false
			}
		case c == '#':
			inComment = true
		case c == '"':
			inString = true
		case c == '`':
			inBacktick = true
		case c == '(' || c == '<':
			depth++
		case c == ')':
			depth--
		case c == '>':
			if prev != '-' {
				depth--
			}
		}
		prev = c
	}
	return depth
}
