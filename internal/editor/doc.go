// Package editor resolves the user's editor and runs it on a temporary file.
package editor
