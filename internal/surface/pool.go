package surface

import "github.com/muurk/tablekit/internal/table"

// ReusePool recycles rows between render passes, keyed by reuse identifier.
type ReusePool struct {
	free    map[string][]*table.Row
	created int
	reused  int
}

// NewReusePool creates an empty pool.
func NewReusePool() *ReusePool {
	return &ReusePool{free: make(map[string][]*table.Row)}
}

// Dequeue implements table.Pool.
func (p *ReusePool) Dequeue(reuseID string) *table.Row {
	if list := p.free[reuseID]; len(list) > 0 {
		row := list[len(list)-1]
		p.free[reuseID] = list[:len(list)-1]
		row.Reset()
		p.reused++
		return row
	}
	p.created++
	return &table.Row{ReuseID: reuseID}
}

// Recycle returns a row to the pool. Rows without a reuse identifier are
// dropped.
func (p *ReusePool) Recycle(row *table.Row) {
	if row == nil || row.ReuseID == "" {
		return
	}
	p.free[row.ReuseID] = append(p.free[row.ReuseID], row)
}

// Stats returns how many rows were allocated and how many were reused.
func (p *ReusePool) Stats() (created, reused int) {
	return p.created, p.reused
}
