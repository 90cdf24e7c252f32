package output

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Notes renders markdown for the terminal. Without color, or when glamour
// fails, the markdown is printed as is.
func (p *Printer) Notes(markdown string) {
	fmt.Fprint(p.w, RenderMarkdown(markdown, p.color, 0))
}

// RenderMarkdown renders markdown with glamour's automatic style. A
// positive width sets word wrapping.
func RenderMarkdown(markdown string, color bool, width int) string {
	if !color {
		return markdown
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

// InstallNotes is the follow-up advice printed after a successful install.
func InstallNotes(fontFamily, shell string) string {
	notes := "## Next steps\n\n"
	if shell != "" {
		notes += fmt.Sprintf("- Log out and back in so `%s` becomes your login shell.\n", shell)
	}
	if fontFamily != "" {
		notes += fmt.Sprintf("- Select **%s Nerd Font** in your terminal so prompt icons render.\n", fontFamily)
	}
	notes += "- Edit files in your dotfiles directory; the links pick up changes immediately.\n"
	notes += "- Run `dotstow status` to check for files that are in the way.\n"
	return notes
}
