package browser

import (
	"encoding/json"
	"sync"

	"github.com/emurenMRz/vdeck/internal/contact"
	"github.com/emurenMRz/vdeck/internal/logging"
)

// CellEvent is emitted when a grid cell or row is activated.
type CellEvent struct {
	Row     RowID
	Column  Column
	Content string
}

// ListView owns the loaded contact rows and emits activation events. Rows
// are fetched once; later reads use the cached copy.
type ListView struct {
	grid Grid
	log  logging.Logger

	mu     sync.RWMutex
	rows   []contact.Row
	loaded bool

	cellHandlers []func(CellEvent)
	rowHandlers  []func(CellEvent)
}

// NewListView returns an empty view rendering into grid.
func NewListView(grid Grid, log logging.Logger) *ListView {
	return &ListView{grid: grid, log: log}
}

// OnCellActivated registers h for single activations of a cell.
func (v *ListView) OnCellActivated(h func(CellEvent)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cellHandlers = append(v.cellHandlers, h)
}

// OnRowActivated registers h for double activations of a row.
func (v *ListView) OnRowActivated(h func(CellEvent)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rowHandlers = append(v.rowHandlers, h)
}

// Load fetches the list from url once. A failed request leaves the grid
// empty.
func (v *ListView) Load(f *Fetcher, url string) {
	f.Get(url, func(body []byte, err error) {
		if err != nil {
			v.log.Warn("Contact list request failed", logging.String("url", url), logging.Err(err))
			return
		}
		var rows []contact.Row
		if err := json.Unmarshal(body, &rows); err != nil {
			v.log.Warn("Contact list is not a JSON array of rows", logging.String("url", url), logging.Err(err))
			return
		}
		v.SetRows(rows)
	})
}

// SetRows replaces the cached rows and renders them.
func (v *ListView) SetRows(rows []contact.Row) {
	cp := make([]contact.Row, len(rows))
	copy(cp, rows)

	v.mu.Lock()
	v.rows = cp
	v.loaded = true
	v.mu.Unlock()

	v.grid.SetRows(cp)
	v.log.Debug("Contact list rendered", logging.Int("rows", len(cp)))
}

// Loaded reports whether the list has been received.
func (v *ListView) Loaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded
}

// Len returns the number of rows.
func (v *ListView) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.rows)
}

// Row returns the row with the given id.
func (v *ListView) Row(id RowID) (contact.Row, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	i := int(id) - 1
	if i < 0 || i >= len(v.rows) {
		return contact.Row{}, false
	}
	return v.rows[i], true
}

// ActivateCell emits a cell activation. It reports false for unknown rows or
// columns.
func (v *ListView) ActivateCell(id RowID, col Column) bool {
	ev, handlers, ok := v.event(id, col, false)
	if !ok {
		return false
	}
	for _, h := range handlers {
		h(ev)
	}
	return true
}

// ActivateRow emits a row activation from the given column.
func (v *ListView) ActivateRow(id RowID, col Column) bool {
	ev, handlers, ok := v.event(id, col, true)
	if !ok {
		return false
	}
	for _, h := range handlers {
		h(ev)
	}
	return true
}

func (v *ListView) event(id RowID, col Column, row bool) (CellEvent, []func(CellEvent), bool) {
	if !col.Valid() {
		return CellEvent{}, nil, false
	}
	r, ok := v.Row(id)
	if !ok {
		return CellEvent{}, nil, false
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	handlers := v.cellHandlers
	if row {
		handlers = v.rowHandlers
	}
	return CellEvent{Row: id, Column: col, Content: col.Cell(r)}, handlers, true
}
