// Package table is the declarative list-content engine.
//
// A screen describes its list as a tree of descriptors:
//
//	Contents
//	└── Section (header, footer)
//	    └── Item (title, row builder, tap action, delete action, height)
//
// The tree is built synchronously, handed to a rendering surface, and never
// patched. Every change rebuilds the whole tree and hands the new one over.
// Rows are addressed by IndexPath only; items carry no identity across
// rebuilds.
//
// # Materialization
//
// The surface asks a Materializer for the Row at an IndexPath when that
// position becomes visible. An Item either has no builder (the row is its
// title), a CustomBuilder called with no arguments, or a PooledBuilder called
// with the surface's reuse Pool. RowBuilder is a closed sum type, so an item
// holds at most one of them.
//
// Builders run every time a row is materialized and read the theme at that
// moment. A built row is a snapshot. Switch items go further: they ask for
// their state once per item, so materializing the same contents again still
// shows the old value. Only rebuilding the contents picks up a change.
//
// # Rows
//
// Factory offers the pre-packaged rows (label, disclosure, checkmark, switch,
// image, accessory view, copy, pooled). All of them build the same primitive:
// optional icon, primary label, optional accessory. Which of the two texts
// wraps is decided by WrapLines.
//
// # Actions
//
// Dispatcher runs tap, toggle and delete actions for a position. Actions are
// fire and forget. Screen-bound actions resolve the item's owner Handle at
// dispatch time and quietly do nothing, apart from a diag report, when the
// owner is gone.
//
// # Errors
//
// Nothing in this package returns an error. Inconsistencies (a second
// builder, an out-of-range path, a section in two contents) are programmer
// errors and go to the diag package.
package table
