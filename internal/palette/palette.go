// Package palette holds the literal hex values of the built-in themes.
package palette

// Palette lists the colors of one built-in theme. Empty strings mean the
// element keeps the terminal's own color.
type Palette struct {
	Header1FG   string
	Header1BG   string
	HeaderXFG   string
	CodeBlockFG string
	CodeBlockBG string
	IndentsFG   string
	LinkFG      string
}

// Dark is used when the terminal background is dark or unknown.
var Dark = Palette{
	Header1BG:   "#6155FB",
	HeaderXFG:   "#01AFFD",
	CodeBlockFG: "#FF6060",
	CodeBlockBG: "#303030",
	IndentsFG:   "#555",
	LinkFG:      "#008787",
}

// Light is used when the terminal reports a light background.
var Light = Palette{
	Header1FG:   "#FFF",
	Header1BG:   "#6155FB",
	HeaderXFG:   "#01AFFD",
	CodeBlockFG: "#EA3323",
	CodeBlockBG: "#E4E4E4",
	LinkFG:      "#5CBC9A",
}
