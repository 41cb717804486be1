package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pylift/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new pylift project",
	Long: `Initialize a new pylift project by creating a project manifest (pylift.toml)
and a sample legacy source file (main.py). If [path|name] is omitted, the
current directory is initialized. A non-existing name creates a directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "pylift-project"
	}

	manifestPath, err := project.Scaffold(target, name)
	if err != nil {
		return err
	}

	mainPath := filepath.Join(target, "main.py")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainPy()), 0o644); err != nil {
			return fmt.Errorf("failed to write main.py: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized pylift project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", filepath.Base(manifestPath))
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - main.py\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - main.py (existing)\n")
	}
	return nil
}

// defaultMainPy returns a small legacy-dialect program so a fresh project
// has something to translate.
func defaultMainPy() string {
	return `# Sample legacy-dialect input. Run: pylift translate main.py
def greet(name):
    print "Hello,", name

for i in xrange(3):
    greet("world")
`
}
