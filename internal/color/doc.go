// Package color holds the lipgloss styles and icons khelp prints with.
//
// Colors are adaptive (separate light and dark variants) and the terminal
// profile is detected by lipgloss. Initialize(true), or a NO_COLOR
// environment variable, forces the ASCII profile so output carries no
// escape sequences.
//
//	fmt.Println(color.Successf("Switched to context '%s'", name))
//	fmt.Println(color.SubtleStyle.Render("(no namespace)"))
package color
