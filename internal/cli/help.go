package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalCyan).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(SignalViolet).
			Italic(true)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SignalViolet).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(SignalCyan).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(SignalAmber).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(CoolGray).
				Italic(true)
)

// StyledHelpPrinter returns a kong help printer with lipgloss styling. It
// prints the selected command's arguments and the flags of the command and
// its parents.
func StyledHelpPrinter(kong.HelpOptions) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		var sb strings.Builder
		sb.WriteString(helpTitleStyle.Render(appName))
		sb.WriteString("\n")
		if help := node.Help; help != "" {
			sb.WriteString(helpDescStyle.Render(help))
			sb.WriteString("\n")
		}

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(ctx.Model.Name)
		if node != ctx.Model.Node {
			sb.WriteString(" ")
			sb.WriteString(node.Summary())
		} else {
			sb.WriteString(" <command> [flags]")
		}
		sb.WriteString("\n")

		if cmds := commands(node); len(cmds) > 0 {
			writeSection(&sb, "Commands:", cmds, helpArgStyle)
		}
		if args := arguments(node); len(args) > 0 {
			writeSection(&sb, "Arguments:", args, helpArgStyle)
		}
		writeSection(&sb, "Flags:", flags(node), helpFlagStyle)

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

type helpEntry struct {
	name       string
	help       string
	defaultVal string
}

func writeSection(sb *strings.Builder, title string, entries []helpEntry, style lipgloss.Style) {
	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(style.Render(e.name))
		if e.help != "" {
			sb.WriteString("  ")
			sb.WriteString(e.help)
		}
		if e.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + e.defaultVal + ")"))
		}
		sb.WriteString("\n")
	}
}

func commands(node *kong.Node) []helpEntry {
	var out []helpEntry
	for _, child := range node.Children {
		if child.Hidden || child.Type != kong.CommandNode {
			continue
		}
		out = append(out, helpEntry{name: child.Name, help: child.Help})
	}
	return out
}

func arguments(node *kong.Node) []helpEntry {
	var out []helpEntry
	for _, arg := range node.Positional {
		out = append(out, helpEntry{name: arg.Summary(), help: arg.Help})
	}
	return out
}

func flags(node *kong.Node) []helpEntry {
	out := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}

	for n := node; n != nil; n = n.Parent {
		for _, f := range n.Flags {
			if f.Name == "help" || f.Hidden {
				continue
			}

			name := "--" + f.Name
			if f.Short != 0 {
				name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}
			if !f.IsBool() && f.PlaceHolder != "" {
				name += "=" + strings.ToUpper(f.PlaceHolder)
			}

			def := ""
			if f.HasDefault && !f.IsBool() {
				def = f.Default
			}
			out = append(out, helpEntry{name: name, help: f.Help, defaultVal: def})
		}
	}
	return out
}
