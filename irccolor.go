package leczair

type ircColor string

// mIRC colour codes, sent as ColorTag followed by two digits.
const (
	White      ircColor = "00"
	Black      ircColor = "01"
	Blue       ircColor = "02"
	Green      ircColor = "03"
	Red        ircColor = "04"
	Brown      ircColor = "05"
	Magenta    ircColor = "06"
	Orange     ircColor = "07"
	Yellow     ircColor = "08"
	LightGreen ircColor = "09"
	Cyan       ircColor = "10"
	LightCyan  ircColor = "11"
	LightBlue  ircColor = "12"
	Pink       ircColor = "13"
	Grey       ircColor = "14"
	LightGrey  ircColor = "15"
	Default    ircColor = "99"
	NoColor    ircColor = ""
)

const (
	ColorTag = "\x03"
)

var colors = map[string]ircColor{}

func init() {
	for _, c := range []ircColor{
		White, Black, Blue, Green, Red, Brown, Magenta, Orange, Yellow,
		LightGreen, Cyan, LightCyan, LightBlue, Pink, Grey, LightGrey, Default,
	} {
		colors[string(c)] = c
	}
}

func (c ircColor) String() string {
	return string(c)
}

// Colorize wraps text in a colour code and a reset.
func Colorize(c ircColor, text string) string {
	if c == NoColor {
		return text
	}
	return ColorTag + c.String() + text + ColorTag
}

func lookupColor(str string) ircColor {
	color, ok := colors[str]
	if !ok {
		return NoColor
	}
	return color
}
