// Package dbus exposes a toast notifier on the session bus as the
// io.github.jmylchreest.Toastui service and provides the matching client.
//
// Every method call is executed on the daemon's loop, so the notifier is only
// ever touched from a single goroutine.
package dbus
