package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvcisback/pytypedecl/internal/parser"
	"github.com/mvcisback/pytypedecl/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE...",
	Short: "Re-check files whenever they change",
	Long: `Watch checks each file once, then keeps running and re-checks a file
every time it is written. Rapid save bursts are coalesced; the debounce
window comes from the project file. Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, path := range args {
		checkOnce(path, time.Now())
	}

	debounce := time.Duration(projectConfig.Watch.Debounce)
	w, err := watch.New(args, debounce)
	if err != nil {
		return err
	}
	defer w.Close()
	logger.Info("watching %d files (debounce %s)", len(args), debounce)

	for {
		select {
		case ev := <-w.Events():
			switch {
			case ev.Op&(watch.OpWrite|watch.OpCreate) != 0:
				checkOnce(ev.Path, ev.Time)
			case ev.Op&(watch.OpRemove|watch.OpRename) != 0:
				logger.Warn("%s: removed", displayPath(ev.Path))
			}
		case err := <-w.Errors():
			logger.Error("watch: %v", err)
		case <-ctx.Done():
			fmt.Println()
			return nil
		}
	}
}

// checkOnce parses path and prints a one-line verdict, plus the
// diagnostic when the parse fails.
func checkOnce(path string, at time.Time) {
	stamp := at.Format("15:04:05")
	if _, err := parser.ParseFile(path); err != nil {
		fmt.Printf("[%s] %s: FAIL\n", stamp, displayPath(path))
		report(err)
		return
	}
	fmt.Printf("[%s] %s: ok\n", stamp, displayPath(path))
}

// displayPath shortens path relative to the working directory when
// that does not lose information.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
