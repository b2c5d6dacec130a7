package drawing

import (
	"fmt"
	"io"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// Record is the persisted state of a container: geometry, flags and
// parameters. Adorners, font faces and drag state are never stored.
type Record struct {
	Kind      Kind        `yaml:"kind"`
	Rect      Rect        `yaml:",inline"`
	Flags     ElementFlag `yaml:"flags,omitempty"`
	Style     Style       `yaml:"style"`
	Text      string      `yaml:"text,omitempty"`
	Number    int         `yaml:"number,omitempty"`
	PixelSize int         `yaml:"pixel_size,omitempty"`
}

// Scene is a serialisable snapshot of a surface's annotations.
type Scene struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Containers []Record `yaml:"containers"`
}

// kindFlags lists the flags each kind is built with. Flags read from a
// scene file are replaced by these.
func kindFlags(k Kind) ElementFlag {
	if k == KindCrop {
		return FlagConfirmable
	}
	return 0
}

// fromRecord builds a detached container. Callers must Attach it before use.
func fromRecord(rec Record) (Container, error) {
	var c Container
	rec.Flags = kindFlags(rec.Kind)
	switch rec.Kind {
	case KindCrop:
		cc := &CropContainer{}
		cc.init(cc, KindCrop, rec.Flags, rec.Rect, rec.Style)
		c = cc
	case KindRectangle:
		rc := &RectangleContainer{}
		rc.init(rc, rec.Kind, rec.Flags, rec.Rect, rec.Style)
		c = rc
	case KindEllipse:
		ec := &EllipseContainer{}
		ec.init(ec, rec.Kind, rec.Flags, rec.Rect, rec.Style)
		c = ec
	case KindLine:
		lc := &LineContainer{}
		lc.init(lc, rec.Kind, rec.Flags, rec.Rect, rec.Style)
		c = lc
	case KindArrow:
		ac := &ArrowContainer{}
		ac.init(ac, rec.Kind, rec.Flags, rec.Rect, rec.Style)
		c = ac
	case KindText:
		tc := &TextContainer{Text: rec.Text}
		tc.init(tc, rec.Kind, rec.Flags, rec.Rect, rec.Style)
		c = tc
	case KindStepLabel:
		sc := &StepLabelContainer{Number: rec.Number}
		sc.init(sc, rec.Kind, rec.Flags, rec.Rect, rec.Style)
		c = sc
	case KindHighlight:
		hc := &HighlightContainer{}
		hc.init(hc, rec.Kind, rec.Flags, rec.Rect, rec.Style)
		c = hc
	case KindObfuscate:
		oc := &ObfuscateContainer{PixelSize: rec.PixelSize}
		oc.init(oc, rec.Kind, rec.Flags, rec.Rect, rec.Style)
		c = oc
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, rec.Kind)
	}
	return c, nil
}

// copyRecords deep copies records so history entries never alias live state.
func copyRecords(in []Record) []Record {
	var out []Record
	if err := copier.CopyWithOption(&out, &in, copier.Option{DeepCopy: true}); err != nil {
		out = append([]Record(nil), in...)
	}
	return out
}

// ReadScene decodes a YAML scene.
func ReadScene(r io.Reader) (*Scene, error) {
	var sc Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if err == io.EOF {
			return &sc, nil
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	for i, rec := range sc.Containers {
		if _, err := ParseKind(string(rec.Kind)); err != nil {
			return nil, fmt.Errorf("container %d: %w", i, err)
		}
	}
	return &sc, nil
}

// Write encodes the scene as YAML.
func (sc *Scene) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return enc.Close()
}

// LoadSceneFile reads a scene from path.
func LoadSceneFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadScene(f)
}

// SaveSceneFile writes sc to path, replacing any existing file.
func SaveSceneFile(path string, sc *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sc.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
