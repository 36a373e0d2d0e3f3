// Package daemon wires the toast notifier to its host services for toastuid:
// the UI loop, theme, audio, history, the D-Bus server and config hot reload.
package daemon
