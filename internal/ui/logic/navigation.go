package logic

// Navigator handles selection and viewport management over a list of items
// of varying rendered height. Offsets are in terminal rows.
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	itemHeights    []int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// SetItems replaces the item layout, keeping the selection in range
func (n *Navigator) SetItems(heights []int) {
	n.itemHeights = append(n.itemHeights[:0], heights...)
	if n.selectedIndex >= len(heights) {
		n.selectedIndex = len(heights) - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	n.ensureSelectedVisible()
}

// SetViewportHeight sets the number of rows available for the list
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// Reset moves the selection and viewport back to the top
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// SelectedIndex returns the current selected index
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns the number of visible rows
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// TotalLines returns the rendered height of all items
func (n *Navigator) TotalLines() int {
	total := 0
	for _, h := range n.itemHeights {
		total += h
	}
	return total
}

// Navigate moves the selection in the given direction
func (n *Navigator) Navigate(direction string) {
	count := len(n.itemHeights)
	if count == 0 {
		return
	}

	switch direction {
	case "up":
		n.selectedIndex--
	case "down":
		n.selectedIndex++
	case "pageup":
		n.selectedIndex -= n.itemsPerPage()
	case "pagedown":
		n.selectedIndex += n.itemsPerPage()
	case "home":
		n.selectedIndex = 0
	case "end":
		n.selectedIndex = count - 1
	}

	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	if n.selectedIndex >= count {
		n.selectedIndex = count - 1
	}
	n.ensureSelectedVisible()
}

// Scroll moves the viewport by delta rows, dragging the selection along so it
// stays visible
func (n *Navigator) Scroll(delta int) {
	n.viewportOffset += delta
	n.clampOffset()

	top := n.itemTop(n.selectedIndex)
	bottom := top + n.itemHeight(n.selectedIndex)
	switch {
	case top < n.viewportOffset:
		n.selectedIndex = n.itemAt(n.viewportOffset)
		if n.itemTop(n.selectedIndex) < n.viewportOffset && n.selectedIndex < len(n.itemHeights)-1 {
			n.selectedIndex++
		}
	case bottom > n.viewportOffset+n.viewportHeight:
		n.selectedIndex = n.itemAt(n.viewportOffset + n.viewportHeight - 1)
	}
}

// NearBottom reports whether the bottom of the viewport is within threshold
// rows of the end of the content
func (n *Navigator) NearBottom(threshold int) bool {
	return n.viewportOffset+n.viewportHeight >= n.TotalLines()-threshold
}

func (n *Navigator) itemsPerPage() int {
	h := n.itemHeight(n.selectedIndex)
	if h < 1 {
		h = 1
	}
	per := n.viewportHeight / h
	if per < 1 {
		per = 1
	}
	return per
}

func (n *Navigator) itemHeight(index int) int {
	if index < 0 || index >= len(n.itemHeights) {
		return 0
	}
	return n.itemHeights[index]
}

func (n *Navigator) itemTop(index int) int {
	top := 0
	for i := 0; i < index && i < len(n.itemHeights); i++ {
		top += n.itemHeights[i]
	}
	return top
}

// itemAt returns the index of the item covering row
func (n *Navigator) itemAt(row int) int {
	top := 0
	for i, h := range n.itemHeights {
		if row < top+h {
			return i
		}
		top += h
	}
	if len(n.itemHeights) == 0 {
		return 0
	}
	return len(n.itemHeights) - 1
}

func (n *Navigator) maxOffset() int {
	max := n.TotalLines() - n.viewportHeight
	if max < 0 {
		return 0
	}
	return max
}

func (n *Navigator) clampOffset() {
	if n.viewportOffset > n.maxOffset() {
		n.viewportOffset = n.maxOffset()
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if len(n.itemHeights) == 0 {
		n.viewportOffset = 0
		return
	}

	top := n.itemTop(n.selectedIndex)
	bottom := top + n.itemHeight(n.selectedIndex)

	if top < n.viewportOffset {
		n.viewportOffset = top
	}
	if bottom > n.viewportOffset+n.viewportHeight {
		n.viewportOffset = bottom - n.viewportHeight
		// An item taller than the viewport shows its top
		if n.viewportOffset > top {
			n.viewportOffset = top
		}
	}
	n.clampOffset()
}
