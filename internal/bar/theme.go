package bar

// Theme selects one of the fixed glyph sets.
type Theme int

const (
	// ThemeFira uses the progress-bar glyphs of Fira Code (private use area).
	ThemeFira Theme = iota
	// ThemeASCII draws with plain ASCII and has no mascot.
	ThemeASCII
)

func (t Theme) String() string {
	switch t {
	case ThemeASCII:
		return "ascii"
	default:
		return "fira"
	}
}

// Glyphs is the immutable set of pieces a bar is drawn from.
type Glyphs struct {
	Begin        string
	BeginFilled  string
	Filler       string
	Space        string
	Head         string
	Finish       string
	FinishFilled string
}

var themeGlyphs = map[Theme]Glyphs{
	ThemeFira: {
		Begin:        "\uee00",
		BeginFilled:  "\uee03",
		Filler:       "\uee04",
		Space:        "\uee01",
		Head:         "\uee01",
		Finish:       "\uee02",
		FinishFilled: "\uee05",
	},
	ThemeASCII: {
		Begin:        "[",
		BeginFilled:  "[",
		Filler:       "=",
		Space:        " ",
		Head:         ">",
		Finish:       "]",
		FinishFilled: "]",
	},
}

// Glyphs returns the glyph set of the theme.
func (t Theme) Glyphs() Glyphs {
	if g, ok := themeGlyphs[t]; ok {
		return g
	}
	return themeGlyphs[ThemeFira]
}

// catFrames all have the same display width so a frame fully overwrites the
// previous one.
var catFrames = []string{
	"(=^.^=)",
	"(=^o^=)",
	"(=-.-=)",
	"(=^o^=)",
}
