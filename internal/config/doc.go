// Package config loads khelp's own settings.
//
// Settings are layered: the built-in defaults come first and the user file
// at ~/.config/khelp/config.yaml is merged over them field by field. Command
// line flags are applied last by the caller.
//
// Example settings file:
//
//	kubeconfig: ~/work/kubeconfig
//	backup: false
//	editor: code --wait
//	updateRepository: owner/khelp
//	logLevel: info
//
// A leading "~/" in kubeconfig is expanded by ExpandHome.
package config
