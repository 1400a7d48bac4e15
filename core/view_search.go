package core

import "github.com/ionut-t/gotext/internal/log"

// SearchDirection selects which way a search scans.
type SearchDirection int

const (
	SearchForward SearchDirection = iota
	SearchBackward
)

// searchSession remembers where the caret was before the search started so
// a dismissed search can restore it.
type searchSession struct {
	prevLocation     Location
	prevScrollOffset Position
	query            *Line
}

// IsSearching reports whether a search session is active.
func (v *View) IsSearching() bool {
	return v.search != nil
}

// EnterSearch starts a search session at the current caret location.
func (v *View) EnterSearch() {
	v.search = &searchSession{
		prevLocation:     v.textLocation,
		prevScrollOffset: v.scrollOffset,
	}
	log.Debug(log.CatSearch, "search started", "line", v.textLocation.LineIdx, "grapheme", v.textLocation.GraphemeIdx)
}

// ExitSearch ends the session and keeps the caret where the search left it.
func (v *View) ExitSearch() {
	v.search = nil
	v.SetNeedsRedraw(true)
}

// DismissSearch ends the session and restores the caret and scroll offset
// from before the search.
func (v *View) DismissSearch() {
	if v.search != nil {
		v.textLocation = v.search.prevLocation
		v.scrollOffset = v.search.prevScrollOffset
		// The view may have been resized during the search.
		v.scrollTextLocationIntoView()
	}
	v.ExitSearch()
}

// Search sets the query and jumps to its first match at or after the caret.
func (v *View) Search(query string) {
	if v.search == nil {
		log.Warn(log.CatSearch, "search without active session", "query", query)
		return
	}
	v.search.query = NewLine(query)
	v.searchInDirection(v.textLocation, SearchForward)
}

// SearchNext jumps to the next match after the current one.
func (v *View) SearchNext() {
	query, err := v.searchQuery()
	if err != nil {
		log.Warn(log.CatSearch, "search next ignored", "error", err)
		return
	}
	step := min(query.GraphemeCount(), 1)
	from := Location{
		LineIdx:     v.textLocation.LineIdx,
		GraphemeIdx: v.textLocation.GraphemeIdx + step,
	}
	v.searchInDirection(from, SearchForward)
}

// SearchPrev jumps to the previous match before the caret.
func (v *View) SearchPrev() {
	v.searchInDirection(v.textLocation, SearchBackward)
}

func (v *View) searchQuery() (*Line, error) {
	if v.search == nil || v.search.query == nil {
		return nil, ErrNoSearchSession
	}
	return v.search.query, nil
}

func (v *View) searchInDirection(from Location, direction SearchDirection) {
	query, err := v.searchQuery()
	if err != nil {
		log.Warn(log.CatSearch, "search ignored", "error", err)
		return
	}

	var (
		location Location
		found    bool
	)
	if !query.IsEmpty() {
		if direction == SearchForward {
			location, found = v.document.SearchForward(query.String(), from)
		} else {
			location, found = v.document.SearchBackward(query.String(), from)
		}
	}
	if found {
		v.textLocation = location
		v.centerTextLocation()
	}
	log.Debug(log.CatSearch, "search", "query", query.String(), "direction", direction, "found", found)
	v.SetNeedsRedraw(true)
}
