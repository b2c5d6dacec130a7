package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/annotator/internal/config"
	"github.com/example/annotator/internal/drawing"
	"github.com/example/annotator/internal/theme"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func testRoot() *root {
	return &root{program: "annotator", config: config.New(), activeTheme: theme.Default()}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"red", color.RGBA{255, 0, 0, 255}},
		{"CornflowerBlue", color.RGBA{100, 149, 237, 255}},
		{"navy", color.RGBA{0, 0, 128, 255}},
		{"#00FF0080", color.RGBA{0, 255, 0, 128}},
		{"none", color.RGBA{}},
	}
	for _, tt := range tests {
		got, err := parseColor(tt.in)
		if err != nil {
			t.Fatalf("parseColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#12", "notacolor"} {
		if _, err := parseColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseDrawArgs(t *testing.T) {
	d, err := parseDrawCmd([]string{"-scene", "s.yaml", "line", "-5", "10", "20", "-30", "--color=blue"}, nil)
	if err != nil {
		t.Fatalf("parseDrawCmd: %v", err)
	}
	if d.kind != drawing.KindLine {
		t.Fatalf("kind = %q", d.kind)
	}
	if want := []int{-5, 10, 20, -30}; len(d.coords) != 4 || d.coords[0] != want[0] || d.coords[3] != want[3] {
		t.Fatalf("coords = %v, want %v", d.coords, want)
	}
	if d.style.colorSpec != "blue" {
		t.Fatalf("color = %q", d.style.colorSpec)
	}
}

func TestParseDrawErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"rectangle", "0", "0", "1", "1"}, "scene file is required"},
		{[]string{"-scene", "s.yaml", "blob", "0", "0", "1", "1"}, "unknown"},
		{[]string{"-scene", "s.yaml", "rectangle", "0", "0", "1"}, "requires 4 integer arguments"},
		{[]string{"-scene", "s.yaml", "text", "0", "0"}, "text requires x y and content"},
		{[]string{"-scene", "s.yaml", "step", "1"}, "step requires x y"},
		{[]string{"-scene", "s.yaml", "-color", "nope", "ellipse", "0", "0", "4", "4"}, "invalid color"},
		{[]string{"-scene"}, "requires a value"},
	}
	for _, tt := range tests {
		_, err := parseDrawCmd(tt.args, nil)
		if err == nil {
			t.Errorf("%v: expected error", tt.args)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%v: expected error to mention %q, got %v", tt.args, tt.want, err)
		}
	}
	var uerr *UsageError
	if _, err := parseDrawCmd([]string{"-scene", "s.yaml"}, nil); !errors.As(err, &uerr) {
		t.Errorf("expected usage error without a kind, got %v", err)
	}
}

func TestDrawAppendsToScene(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "in.png")
	scenePath := filepath.Join(dir, "scene.yaml")
	writePNG(t, imgPath, 100, 80, color.RGBA{255, 255, 255, 255})

	run := func(args ...string) {
		t.Helper()
		d, err := parseDrawCmd(args, testRoot())
		if err != nil {
			t.Fatalf("parseDrawCmd(%v): %v", args, err)
		}
		if err := d.Run(); err != nil {
			t.Fatalf("Run(%v): %v", args, err)
		}
	}

	d, err := parseDrawCmd([]string{"-scene", scenePath, "rectangle", "0", "0", "5", "5"}, testRoot())
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Run(); err == nil || !strings.Contains(err.Error(), "-image") {
		t.Fatalf("expected missing scene error, got %v", err)
	}

	run("-scene", scenePath, "-image", imgPath, "rectangle", "30", "20", "10", "5")
	run("-scene", scenePath, "step", "50", "50")
	run("-scene", scenePath, "step", "60", "60")
	run("-scene", scenePath, "-text-size", "20", "text", "5", "5", "hello", "world")

	sc, err := drawing.LoadSceneFile(scenePath)
	if err != nil {
		t.Fatalf("LoadSceneFile: %v", err)
	}
	if sc.Width != 100 || sc.Height != 80 {
		t.Fatalf("scene size = %dx%d", sc.Width, sc.Height)
	}
	if len(sc.Containers) != 4 {
		t.Fatalf("expected 4 containers, got %d", len(sc.Containers))
	}
	rect := sc.Containers[0]
	if rect.Kind != drawing.KindRectangle || rect.Rect != (drawing.Rect{Left: 10, Top: 5, Width: 20, Height: 15}) {
		t.Errorf("unexpected rectangle record %+v", rect)
	}
	if sc.Containers[1].Number != 1 || sc.Containers[2].Number != 2 {
		t.Errorf("step numbers = %d, %d", sc.Containers[1].Number, sc.Containers[2].Number)
	}
	txt := sc.Containers[3]
	if txt.Text != "hello world" || txt.Style.FontSize != 20 || txt.Rect.Width <= 0 {
		t.Errorf("unexpected text record %+v", txt)
	}
}

func TestRenderAppliesSceneAndCrop(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "in.png")
	scenePath := filepath.Join(dir, "scene.yaml")
	outPath := filepath.Join(dir, "out.png")
	writePNG(t, imgPath, 100, 80, color.RGBA{255, 255, 255, 255})

	for _, args := range [][]string{
		{"-scene", scenePath, "-image", imgPath, "-fill", "#0000FF", "-width", "1", "rectangle", "10", "10", "30", "30"},
		{"-scene", scenePath, "crop", "10", "10", "60", "50"},
	} {
		d, err := parseDrawCmd(args, testRoot())
		if err != nil {
			t.Fatal(err)
		}
		if err := d.Run(); err != nil {
			t.Fatal(err)
		}
	}

	c, err := parseRenderCmd([]string{"-scene", scenePath, "-output", outPath, "-effects", "border:2:#000000", imgPath}, testRoot())
	if err != nil {
		t.Fatalf("parseRenderCmd: %v", err)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	out, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	// 50x40 crop plus a two pixel border on each side.
	if got := out.Bounds().Size(); got != image.Pt(54, 44) {
		t.Fatalf("output size = %v", got)
	}
	// The rectangle's fill now starts at the crop origin.
	if got := color.RGBAModel.Convert(out.At(2+5, 2+5)).(color.RGBA); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("fill pixel = %v", got)
	}
	if got := color.RGBAModel.Convert(out.At(0, 0)).(color.RGBA); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("border pixel = %v", got)
	}
}

func TestRenderMissingScene(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "in.png")
	writePNG(t, imgPath, 4, 4, color.RGBA{A: 255})
	c, err := parseRenderCmd([]string{"-scene", filepath.Join(dir, "missing.yaml"), "-output", filepath.Join(dir, "o.png"), imgPath}, testRoot())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestEditCmdBuildsEditor(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "in.png")
	writePNG(t, imgPath, 30, 20, color.RGBA{A: 255})
	r := testRoot()
	r.config.Export.Effects = "grayscale"
	r.config.SaveDir = dir

	e, err := parseEditCmd([]string{"-color", "lime", "-width", "6", imgPath}, r)
	if err != nil {
		t.Fatalf("parseEditCmd: %v", err)
	}
	ed, err := e.newEditor()
	if err != nil {
		t.Fatalf("newEditor: %v", err)
	}
	if ed.Style.LineColor != (drawing.Color{G: 255, A: 255}) || ed.Style.LineThickness != 6 {
		t.Errorf("unexpected style %+v", ed.Style)
	}
	if len(ed.Effects) != 1 || ed.Effects[0].Name() != "grayscale" {
		t.Errorf("unexpected effects %v", ed.Effects)
	}
	if ed.SaveDir != dir || ed.HistoryDepth != r.config.Editor.History {
		t.Errorf("config not applied: %+v", ed)
	}

	var uerr *UsageError
	if _, err := parseEditCmd(nil, r); !errors.As(err, &uerr) {
		t.Errorf("expected usage error without an image, got %v", err)
	}
}

func TestResolveThemePrecedence(t *testing.T) {
	r := testRoot()
	custom := theme.Default()
	custom.Name = "mine"
	r.config.Themes["mine"] = custom
	r.config.Theme = "mine"

	t.Setenv("ANNOTATOR_THEME", "")
	if got := r.resolveTheme(); got != custom {
		t.Errorf("config theme not used: %s", got.Name)
	}
	t.Setenv("ANNOTATOR_THEME", "dark")
	if got := r.resolveTheme(); got.Name != "Dark" {
		t.Errorf("env theme not used: %s", got.Name)
	}
	r.themeName = "high_contrast"
	if got := r.resolveTheme(); got.Name == "Dark" || got == custom {
		t.Errorf("flag theme not used: %s", got.Name)
	}
	r.themeName = "does-not-exist"
	if got := r.resolveTheme(); got.Name != "Default" {
		t.Errorf("unknown theme should fall back to default: %s", got.Name)
	}
}

func TestUsageRendersTemplates(t *testing.T) {
	r := newRoot()
	msg := (&UsageError{of: r}).Error()
	for _, want := range []string{"Usage: annotator", "render", "-theme"} {
		if !strings.Contains(msg, want) {
			t.Errorf("root usage missing %q:\n%s", want, msg)
		}
	}
	d := &drawCmd{root: r.subcommand("draw")}
	if msg := (&UsageError{of: d}).Error(); !strings.Contains(msg, "annotator draw -scene") {
		t.Errorf("draw usage not rendered:\n%s", msg)
	}
}

func TestConfigPrint(t *testing.T) {
	r := testRoot()
	r.config.Theme = "dark"
	c, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	c.out = &buf
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "theme = dark") || !strings.Contains(buf.String(), "[editor]") {
		t.Errorf("unexpected config output:\n%s", buf.String())
	}
	c, _ = parseConfigCmd([]string{"bogus"}, r)
	if err := c.Run(); err == nil {
		t.Errorf("expected unknown config command error")
	}
}

func TestEffectsList(t *testing.T) {
	var buf bytes.Buffer
	c := &effectsCmd{root: testRoot(), out: &buf}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "resize:800x600:aspect") {
		t.Errorf("effects list missing resize:\n%s", buf.String())
	}
}
