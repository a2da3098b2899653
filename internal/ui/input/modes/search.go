package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"launchscroll/internal/ui/input/types"
)

// SearchMode edits the live launch name search
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
