// Package settings is the interactive demo built on the table engine: a
// settings screen whose contents are rebuilt from scratch on every change,
// a username editor driving the discriminator widget, and the App that
// stacks them.
//
// Screens are registered with a screen.Registry. Items built by a screen
// carry a non-owning handle to it, and copy confirmations are routed to
// whichever screen is in the foreground when the row is tapped.
package settings
