package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvcisback/pytypedecl/internal/cli"
)

// TestRunCheck tests the error contract that decides the process exit
// status: nil exits zero, anything else makes main exit one.
func TestRunCheck(t *testing.T) {
	saved := logger
	logger = cli.NewLogger(false, false)
	defer func() { logger = saved }()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.pytd")
	if err := os.WriteFile(good, []byte("x: int\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.pytd")
	if err := os.WriteFile(bad, []byte("x int\n"), 0o666); err != nil {
		t.Fatal(err)
	}

	if err := runCheck(checkCmd, []string{good}); err != nil {
		t.Errorf("check on a valid file = %v, want nil", err)
	}
	if err := runCheck(checkCmd, []string{bad}); !errors.Is(err, errReported) {
		t.Errorf("check on an invalid file = %v, want errReported", err)
	}
	if err := runCheck(checkCmd, []string{good, bad}); !errors.Is(err, errReported) {
		t.Errorf("check with one failing file = %v, want errReported", err)
	}
	if err := runCheck(checkCmd, []string{filepath.Join(dir, "absent.pytd")}); !errors.Is(err, errReported) {
		t.Errorf("check on a missing file = %v, want errReported", err)
	}
}
