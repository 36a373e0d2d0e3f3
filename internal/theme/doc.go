// Package theme provides the stylesheets injected into the page by the
// toast notifier. Bundled themes are embedded; user themes are loaded from
// ~/.config/toastui/themes/ and hot-reloaded when the file changes.
package theme
