package readinglist

// Index maps an ISBN to the list status the user holds it under.
type Index map[string]Status

// BuildIndex folds memberships in the order given. When an ISBN sits on
// several lists the later membership wins, so callers pass items by id.
func BuildIndex(items []Item) Index {
	idx := make(Index, len(items))
	for _, it := range items {
		if it.Book == nil {
			continue
		}
		idx[it.Book.ISBN] = it.Status
	}
	return idx
}

// StatusOf returns nil for an unowned ISBN.
func (idx Index) StatusOf(isbn string) *Status {
	s, ok := idx[isbn]
	if !ok {
		return nil
	}
	return &s
}

func (idx Index) Owns(isbn string) bool {
	_, ok := idx[isbn]
	return ok
}
