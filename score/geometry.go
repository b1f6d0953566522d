package score

type Point struct {
	X, Y float64
}

type Size struct {
	W, H float64
}

// Scale is a horizontal and vertical scale factor.
type Scale struct {
	W, H float64
}

type Rect struct {
	X, Y, W, H float64
}

type Color struct {
	R, G, B, A uint8
}

var Black = Color{0, 0, 0, 255}

// TextStyleType is a text style slot. Built-in styles come first; user
// defined names are mapped onto the User slots.
type TextStyleType int

const (
	StyleDefault TextStyleType = iota
	StyleTitle
	StyleStaff
	StyleTempo
	StyleDynamics
	StyleRehearsal
	StyleLyrics
	StyleHarmony

	StyleUser1
	StyleUser2
	StyleUser3
	StyleUser4
	StyleUser5
	StyleUser6
	StyleUser7
	StyleUser8
	StyleUser9
	StyleUser10
	StyleUser11
	StyleUser12

	// No slot.
	StyleNone
)

var builtinStyles = map[string]TextStyleType{
	"default":   StyleDefault,
	"title":     StyleTitle,
	"staff":     StyleStaff,
	"tempo":     StyleTempo,
	"dynamics":  StyleDynamics,
	"rehearsal": StyleRehearsal,
	"lyrics":    StyleLyrics,
	"harmony":   StyleHarmony,
}

// BuiltinStyle maps a built-in style name; it returns StyleNone for
// unknown names.
func BuiltinStyle(name string) TextStyleType {
	if s, ok := builtinStyles[name]; ok {
		return s
	}
	return StyleNone
}
