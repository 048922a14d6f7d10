// Package markterm renders Markdown to a terminal with true-color ANSI
// styling.
//
// Input is parsed as GitHub-flavored Markdown and the resulting tree is
// walked node by node. Every styled element (headings, code, links, strong,
// emphasis, strikethrough) is wrapped by the ElementTheme of its Theme slot,
// which emits one SGR escape before the text and a reset after it. List
// items get a bullet, block quotes a bar, headings and code blocks blank
// lines around them.
//
// Output to something that is not a terminal, or with colors disabled, is
// plain text: the structural markers stay, escape sequences never appear.
//
// Core properties:
//   - Stateless renders; themes are read-only values safe to share
//   - Built-in dark and light themes picked from the terminal background
//   - Custom themes from TOML files
//   - OSC 8 hyperlinks when colored
//
// Example:
//
//	theme := markterm.DarkTheme()
//	err := markterm.Render(markterm.RenderRequest{
//		Reader: strings.NewReader("# Hello\n\nMarkdown in, ANSI out.\n"),
//		Writer: os.Stdout,
//		Theme:  &theme,
//		Color:  markterm.ColorAuto,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
package markterm
