package cmd

import (
	"testing"

	"github.com/mvcisback/pytypedecl/internal/config"
	"github.com/mvcisback/pytypedecl/internal/parser"
)

func TestRenderCanonicalIndent(t *testing.T) {
	mod, err := parser.ParseString("class A:\n    x: int\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	saved := projectConfig
	defer func() { projectConfig = saved }()

	projectConfig = config.Config{}
	if got, want := renderCanonical(mod), "class A:\n    x: int\n"; got != want {
		t.Errorf("default indent: got %q, want %q", got, want)
	}

	projectConfig.Fmt.Indent = 2
	if got, want := renderCanonical(mod), "class A:\n  x: int\n"; got != want {
		t.Errorf("indent 2: got %q, want %q", got, want)
	}
}
