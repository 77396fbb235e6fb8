package app

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestRegisterFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	expectedFlags := []string{
		"root",
		"file-types",
		"exclude-folders",
		"include-code-comments",
		"max-depth",
		"max-file-size-kb",
		"output-dir",
		"workers",
		"lock-timeout",
		"log-level",
		"max-results",
	}

	for _, name := range expectedFlags {
		if flags.Lookup(name) == nil {
			t.Errorf("Expected flag %q to be registered", name)
		}
	}
}

func TestRegisterFlags_Shorthand(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	shorthandFlags := map[string]string{
		"root":        "r",
		"max-depth":   "d",
		"output-dir":  "o",
		"workers":     "w",
		"log-level":   "l",
		"max-results": "n",
	}

	for name, shorthand := range shorthandFlags {
		flag := flags.Lookup(name)
		if flag == nil {
			t.Errorf("Flag %q not found", name)
			continue
		}
		if flag.Shorthand != shorthand {
			t.Errorf("Flag %q expected shorthand %q, got %q", name, shorthand, flag.Shorthand)
		}
	}
}

func TestRegisterFlags_SetValues(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	err := flags.Parse([]string{
		"--root", "/tmp/docs",
		"--file-types", "md,ts",
		"--max-depth", "3",
		"--lock-timeout", "5s",
		"--include-code-comments",
	})
	if err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	root, _ := flags.GetString("root")
	if root != "/tmp/docs" {
		t.Errorf("Expected root '/tmp/docs', got '%s'", root)
	}

	fileTypes, _ := flags.GetStringSlice("file-types")
	if len(fileTypes) != 2 || fileTypes[0] != "md" || fileTypes[1] != "ts" {
		t.Errorf("Expected file types [md ts], got %v", fileTypes)
	}

	maxDepth, _ := flags.GetInt("max-depth")
	if maxDepth != 3 {
		t.Errorf("Expected max depth 3, got %d", maxDepth)
	}

	lockTimeout, _ := flags.GetDuration("lock-timeout")
	if lockTimeout != 5*time.Second {
		t.Errorf("Expected lock timeout 5s, got %v", lockTimeout)
	}

	comments, _ := flags.GetBool("include-code-comments")
	if !comments {
		t.Error("Expected include-code-comments to be set")
	}
}

func TestRegisterFlags_UnsetFlagsAreNotChanged(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	if err := flags.Parse(nil); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			t.Errorf("Flag %q should not be marked changed", f.Name)
		}
	})
}
