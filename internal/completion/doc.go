// Package completion generates and installs shell completion scripts for the
// khelp command tree. Script bodies come from cobra; context names are
// completed at runtime through the commands' ValidArgsFunction hooks.
package completion
