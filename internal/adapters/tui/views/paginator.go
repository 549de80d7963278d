package views

// defaultPagerSize is used when the browser asks for a non-positive page size
const defaultPagerSize = 10

// Paginator tracks the selected bookmark and the page window over a result
// set that lives in the store. Only the window [PageOffset, PageOffset+PageSize)
// is ever loaded, so PageOffset doubles as the store offset of the next query.
//
// The cursor is an absolute row index into the whole result set, and the
// window always contains it.
type Paginator struct {
	size   int
	offset int
	cursor int
	total  int
}

// NewPaginator returns a paginator showing size bookmarks per page
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = defaultPagerSize
	}
	return &Paginator{size: size}
}

// SetTotal records the match count reported by the last page load. The
// cursor is clamped when deletions or a narrower filter shrank the set.
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.cursor = p.clamp(p.cursor)
	p.follow()
}

// Cursor is the absolute index of the selected bookmark
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor selects the bookmark at pos, moving the window if needed
func (p *Paginator) SetCursor(pos int) {
	p.cursor = p.clamp(pos)
	p.follow()
}

// CursorUp selects the previous bookmark. It reports whether the cursor moved.
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	p.follow()
	return true
}

// CursorDown selects the next bookmark. It reports whether the cursor moved.
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	p.follow()
	return true
}

func (p *Paginator) Total() int {
	return p.total
}

func (p *Paginator) PageSize() int {
	return p.size
}

// PageOffset is the store offset of the first bookmark on the current page
func (p *Paginator) PageOffset() int {
	return p.offset
}

// VisibleRange returns the absolute [start, end) rows shown on this page
func (p *Paginator) VisibleRange() (start, end int) {
	return p.offset, min(p.offset+p.size, p.total)
}

// CursorInPage is the index of the selection within the loaded page items
func (p *Paginator) CursorInPage() int {
	return p.cursor - p.offset
}

// TotalPages never reports fewer than one page, so "page 1/1" shows for an
// empty result.
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.size - 1) / p.size
}

// CurrentPage is 1-based
func (p *Paginator) CurrentPage() int {
	return p.offset/p.size + 1
}

// NextPage jumps to the first bookmark of the following page
func (p *Paginator) NextPage() bool {
	if p.offset+p.size >= p.total {
		return false
	}
	p.offset += p.size
	p.cursor = p.offset
	return true
}

// PrevPage jumps to the first bookmark of the preceding page
func (p *Paginator) PrevPage() bool {
	if p.offset == 0 {
		return false
	}
	p.offset = max(p.offset-p.size, 0)
	p.cursor = p.offset
	return true
}

// Reset goes back to the first page of an unknown result set. It runs
// whenever the query or the favorites toggle changes.
func (p *Paginator) Reset() {
	p.cursor, p.offset, p.total = 0, 0, 0
}

// RemoveAtCursor accounts for a deleted bookmark before the page is
// reloaded. The selection stays on the same index, or moves to the new last
// row when the deleted bookmark was the last one.
func (p *Paginator) RemoveAtCursor() int {
	if p.total == 0 {
		return 0
	}
	p.total--
	p.cursor = p.clamp(p.cursor)
	p.follow()
	return p.cursor
}

func (p *Paginator) clamp(pos int) int {
	if pos >= p.total {
		pos = p.total - 1
	}
	return max(pos, 0)
}

// follow snaps the window to the page holding the cursor
func (p *Paginator) follow() {
	if p.cursor < p.offset || p.cursor >= p.offset+p.size {
		p.offset = (p.cursor / p.size) * p.size
	}
}
