package main

import (
	"flag"

	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/effects"
)

// editCmd opens the interactive editor.
type editCmd struct {
	*root
	fs       *flag.FlagSet
	file     string
	output   string
	scene    string
	effects  string
	stepSize int
	history  int
	style    styleFlags
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	cfg := configOf(r)
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r.subcommand("edit"), fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "image file to annotate")
	fs.StringVar(&e.output, "output", cfg.Export.Output, "file written on export (default: timestamped name in save_dir)")
	fs.StringVar(&e.scene, "scene", "", "scene file loaded on start and saved with Ctrl+Shift+S")
	fs.StringVar(&e.effects, "effects", cfg.Export.Effects, "effects applied on export, e.g. resize:1280x720:aspect,shadow")
	fs.IntVar(&e.stepSize, "step-size", cfg.Editor.StepSize, "diameter of new step labels in pixels")
	fs.IntVar(&e.history, "history", cfg.Editor.History, "number of undo steps kept")
	e.style.register(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.file == "" && fs.NArg() > 0 {
		e.file = fs.Arg(0)
	}
	if e.file == "" {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) newEditor() (*editor.Editor, error) {
	img, err := loadImage(e.file)
	if err != nil {
		return nil, err
	}
	p, err := effects.ParsePipeline(e.effects)
	if err != nil {
		return nil, err
	}
	st, err := e.style.style()
	if err != nil {
		return nil, err
	}
	return editor.New(
		editor.WithImage(img),
		editor.WithOutput(e.output),
		editor.WithSaveDir(configOf(e.root).SaveDir),
		editor.WithScene(e.scene),
		editor.WithTheme(themeOf(e.root)),
		editor.WithStyle(st),
		editor.WithStepSize(e.stepSize),
		editor.WithHistoryDepth(e.history),
		editor.WithEffects(p),
	), nil
}

func (e *editCmd) Run() error {
	ed, err := e.newEditor()
	if err != nil {
		return err
	}
	ed.Run()
	return nil
}
