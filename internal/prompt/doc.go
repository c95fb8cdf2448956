// Package prompt implements the interactive questions khelp asks: choose one
// context, choose several, or confirm an action.
//
// Each prompt is a bubbletea model driven by the bindings in KeyMap. When
// stdin is not a terminal every prompt fails with ErrNotInteractive so that
// callers can fall back to a non-interactive path or report an error.
package prompt
