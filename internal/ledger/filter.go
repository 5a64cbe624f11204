package ledger

// Filter tracks the category selection applied to the visible record list.
// It starts unfiltered; selecting the active category again clears it, so a
// category chip in the UI behaves as a toggle.
type Filter struct {
	category *string
}

func NewFilter() *Filter {
	return &Filter{}
}

// Set transitions the selection. A nil category always clears the filter;
// re-selecting the active category clears it too.
func (f *Filter) Set(category *string) {
	if category == nil {
		f.category = nil
		return
	}
	if f.category != nil && *f.category == *category {
		f.category = nil
		return
	}
	c := *category
	f.category = &c
}

// Clear resets to the unfiltered state. Happens on sign-out and whenever a
// new period is loaded.
func (f *Filter) Clear() {
	f.category = nil
}

// Active returns the selected category, or nil when unfiltered.
func (f *Filter) Active() *string {
	if f.category == nil {
		return nil
	}
	c := *f.category
	return &c
}

// Apply returns the view of records under the current selection.
func (f *Filter) Apply(records []Record) []Record {
	return FilterByCategory(records, f.category)
}
