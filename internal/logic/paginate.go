package logic

// Page describes one page of a list
type Page struct {
	Index int // zero-based, clamped into range
	Count int // at least 1, even for an empty list
	Start int // first item, inclusive
	End   int // last item, exclusive
}

// Paginate splits n items into pages of size and returns the page at index.
// Out of range indexes are clamped; a non-positive size puts everything on one
// page.
func Paginate(n, index, size int) Page {
	if n < 0 {
		n = 0
	}
	if size <= 0 {
		size = n
		if size == 0 {
			size = 1
		}
	}

	count := (n + size - 1) / size
	if count < 1 {
		count = 1
	}
	if index >= count {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}

	start := index * size
	end := start + size
	if end > n {
		end = n
	}
	return Page{Index: index, Count: count, Start: start, End: end}
}

// PageOf returns the index of the page containing item i
func PageOf(i, size int) int {
	if size <= 0 || i < 0 {
		return 0
	}
	return i / size
}
