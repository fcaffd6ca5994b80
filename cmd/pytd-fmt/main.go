// Command pytd-fmt is a standalone formatter for .pytd files.
//
// By default it trims trailing spaces and tabs per line and ensures
// exactly one trailing newline. With -ast it parses the file and
// renders the canonical form instead.
//
// Flags:
//
//	-w      write result to (source) file.
//	-l      list files whose formatting differs (exit 0 like gofmt).
//	-stdin  read from stdin instead of files, write formatted to stdout.
//	-ast    parse and render the canonical form.
//	-d      display diffs instead of rewriting files.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mvcisback/pytypedecl/internal/cli"
	"github.com/mvcisback/pytypedecl/internal/format"
	"github.com/mvcisback/pytypedecl/internal/parser"
)

func main() {
	var (
		writeInPlace bool
		listOnly     bool
		fromStdin    bool
		useAST       bool
		showDiff     bool
	)
	flag.BoolVar(&writeInPlace, "w", false, "write result to (source) file instead of stdout")
	flag.BoolVar(&listOnly, "l", false, "list files whose formatting differs from pytd-fmt output")
	flag.BoolVar(&fromStdin, "stdin", false, "read from stdin instead of files")
	flag.BoolVar(&useAST, "ast", false, "parse and render the canonical form")
	flag.BoolVar(&showDiff, "d", false, "display diffs instead of rewriting files")
	flag.Parse()

	if fromStdin {
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			cli.ExitWithError("failed to read stdin: %v", err)
		}
		out, err := formatSource("<stdin>", in, useAST, false)
		if err != nil {
			cli.ExitWithError("%v", err)
		}
		if showDiff {
			fmt.Print(format.Diff("<stdin>", string(in), string(out), format.DefaultDiffOptions()))
			return
		}
		if _, err := os.Stdout.Write(out); err != nil {
			cli.ExitWithError("failed to write output: %v", err)
		}
		return
	}

	exitCode := 0
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = 1
			continue
		}
		out, err := formatSource(path, data, useAST, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = 1
			continue
		}
		switch {
		case showDiff:
			name := filepath.Base(path)
			fmt.Print(format.Diff(name, string(data), string(out), format.DefaultDiffOptions()))
		case listOnly:
			if !bytes.Equal(out, data) {
				fmt.Fprintln(os.Stdout, path)
			}
		case writeInPlace:
			if !bytes.Equal(out, data) {
				if err := os.WriteFile(path, out, 0o666); err != nil {
					fmt.Fprintln(os.Stderr, err)
					exitCode = 1
				}
			}
		default:
			if _, err := os.Stdout.Write(out); err != nil {
				fmt.Fprintln(os.Stderr, err)
				exitCode = 1
			}
		}
	}
	cli.ExitWithCode(exitCode, "")
}

// formatSource is the shared pipeline for files and stdin. preserveNL
// keeps the file's newline style in basic mode, matching how files are
// rewritten in place.
func formatSource(name string, src []byte, useAST, preserveNL bool) ([]byte, error) {
	if !useAST {
		return format.FormatBytes(src, format.Options{PreserveNewlineStyle: preserveNL}), nil
	}
	mod, err := parser.Parse(string(src), name)
	if err != nil {
		return nil, err
	}
	return []byte(format.Print(mod)), nil
}
