package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/annotator/internal/config"
	"github.com/example/annotator/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	config      *config.Config
	configPath  string
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("annotator", flag.ExitOnError),
		program: "annotator",
	}
	// Precedence: CLI > Env > Config > Default
	// The flag defaults to "" and the fallback happens in Run.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, high_contrast or a file)")
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to read")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) loadConfig() {
	loader := config.NewLoader(version, r.configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg
}

// resolveTheme picks the theme name by precedence and loads it, preferring
// themes defined in the configuration.
func (r *root) resolveTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("ANNOTATOR_THEME")
	}
	if themeName == "" {
		themeName = r.config.Theme
	}
	if t, ok := r.config.LookupTheme(themeName); ok {
		return t
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		// Only warn when a specific theme was requested.
		if themeName != "" && themeName != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.config == nil {
		r.loadConfig()
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit", "annotate":
		cmd, err = parseEditCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "effects":
		cmd = &effectsCmd{root: r.subcommand("effects")}
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r.subcommand("version")}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) subcommand(name string) *root {
	if r == nil {
		return &root{program: name}
	}
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:     program,
		config:      r.config,
		configPath:  r.configPath,
		themeName:   r.themeName,
		activeTheme: r.activeTheme,
	}
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
