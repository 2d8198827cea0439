package table

import (
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/diag"
	"github.com/muurk/tablekit/internal/logging"
)

// Dispatcher runs row actions for surface events. The zero value is ready.
type Dispatcher struct{}

// Select runs the tap action of the item at path. It reports whether an
// action ran.
func (Dispatcher) Select(c *Contents, path IndexPath) bool {
	it, ok := c.Item(path)
	if !ok {
		diag.Report("select out of range", zap.Stringer("path", path))
		return false
	}
	if it.tap == nil {
		return false
	}
	logging.Debug("Row selected", zap.Stringer("path", path), zap.String("item", it.title))
	it.tap()
	return true
}

// Toggle flips a switch row using the state it was built with.
func (Dispatcher) Toggle(row *Row) bool {
	if row == nil || row.Accessory != AccessorySwitch {
		return false
	}
	if !row.Switch.Enabled || row.Switch.OnChange == nil {
		return false
	}
	row.Switch.OnChange(!row.Switch.On)
	return true
}

// Activate is what a surface runs when the user presses a row: switches
// toggle, everything else selects.
func (d Dispatcher) Activate(c *Contents, path IndexPath, row *Row) bool {
	if row != nil && row.Accessory == AccessorySwitch {
		return d.Toggle(row)
	}
	return d.Select(c, path)
}

// EditActions returns the edit affordances of the item at path.
func (Dispatcher) EditActions(c *Contents, path IndexPath) []EditAction {
	it, ok := c.Item(path)
	if !ok || it.deleteAction == nil {
		return nil
	}
	return []EditAction{*it.deleteAction}
}

// Delete runs the delete action of the item at path.
func (Dispatcher) Delete(c *Contents, path IndexPath) bool {
	it, ok := c.Item(path)
	if !ok {
		diag.Report("delete out of range", zap.Stringer("path", path))
		return false
	}
	if it.deleteAction == nil {
		return false
	}
	logging.Debug("Row delete action",
		zap.Stringer("path", path),
		zap.String("label", it.deleteAction.Label),
	)
	it.deleteAction.Handler()
	return true
}
