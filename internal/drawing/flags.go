package drawing

import "fmt"

// ElementFlag is a set of behavioural flags fixed when a container is built.
type ElementFlag uint8

const (
	// FlagConfirmable marks a container whose effect only becomes permanent
	// after Surface.Confirm.
	FlagConfirmable ElementFlag = 1 << iota
)

// Has reports whether all bits of f2 are set.
func (f ElementFlag) Has(f2 ElementFlag) bool { return f&f2 == f2 }

// RenderMode selects between interactive and final rendering.
type RenderMode int

const (
	// RenderEdit draws selection chrome and pending overlays.
	RenderEdit RenderMode = iota
	// RenderExport draws only committed annotations.
	RenderExport
)

func (m RenderMode) String() string {
	if m == RenderExport {
		return "export"
	}
	return "edit"
}

// Kind names a container variant. It is the discriminator stored in records.
type Kind string

const (
	KindCrop      Kind = "crop"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
	KindText      Kind = "text"
	KindStepLabel Kind = "step"
	KindHighlight Kind = "highlight"
	KindObfuscate Kind = "obfuscate"
)

// Kinds lists every container kind in toolbar order.
func Kinds() []Kind {
	return []Kind{KindCrop, KindRectangle, KindEllipse, KindLine, KindArrow, KindText, KindStepLabel, KindHighlight, KindObfuscate}
}

// ParseKind resolves a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
