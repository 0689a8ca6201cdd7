package logic

// Navigator tracks the selected row of a paged list.
type Navigator struct {
	selected int
	pageSize int
	total    int
}

// NewNavigator creates a navigator showing pageSize rows at a time
func NewNavigator(pageSize int) *Navigator {
	n := &Navigator{}
	n.SetPageSize(pageSize)
	return n
}

// Selected returns the selected index, or -1 for an empty list
func (n *Navigator) Selected() int {
	if n.total == 0 {
		return -1
	}
	return n.selected
}

// SetPageSize changes how many rows a page holds. Sizes below one are treated as one.
func (n *Navigator) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	n.pageSize = size
}

// SetTotal updates the list length, clamping the selection into range
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.total = total
	n.clamp()
}

// Select moves the selection to index
func (n *Navigator) Select(index int) {
	n.selected = index
	n.clamp()
}

// Move moves the selection by delta rows
func (n *Navigator) Move(delta int) {
	n.Select(n.selected + delta)
}

// Top selects the first row
func (n *Navigator) Top() {
	n.Select(0)
}

// Bottom selects the last row
func (n *Navigator) Bottom() {
	n.Select(n.total - 1)
}

// Page returns the page holding the selected row
func (n *Navigator) Page() Page {
	return Paginate(n.total, PageOf(n.Selected(), n.pageSize), n.pageSize)
}

func (n *Navigator) clamp() {
	if n.selected >= n.total {
		n.selected = n.total - 1
	}
	if n.selected < 0 {
		n.selected = 0
	}
}
