package table

import (
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/diag"
	"github.com/muurk/tablekit/internal/logging"
)

// Materializer turns the item at a position into a concrete row.
type Materializer struct {
	// Pool is handed to PooledBuilders. Nil means the surface has no pool.
	Pool Pool
}

// Materialize builds the row at path. It never fails: bad positions and
// builders that return nil are reported and yield a fallback row.
func (m Materializer) Materialize(c *Contents, path IndexPath) *Row {
	it, ok := c.Item(path)
	if !ok {
		diag.Report("materialize out of range", zap.Stringer("path", path))
		return &Row{}
	}

	var row *Row
	strategy := "title"

	switch b := it.builder.(type) {
	case CustomBuilder:
		strategy = b.strategy()
		row = b()
	case PooledBuilder:
		strategy = b.strategy()
		pool := m.Pool
		if pool == nil {
			pool = transientPool{}
		}
		row = b(pool)
	}

	if row == nil {
		if it.builder != nil {
			diag.Report("row builder returned nil",
				zap.Stringer("path", path),
				zap.String("strategy", strategy),
			)
		}
		row = &Row{Text: it.title, Icon: it.icon}
	}

	if h, ok := it.CustomRowHeight(); ok {
		row.Height = h
	}

	logging.LogMaterialize(path.Section, path.Row, strategy)
	return row
}
