package rulesync

// ItemError is one rule that could not be synced.
type ItemError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Outcome reports what one sync run did to each rule. It is never persisted.
type Outcome struct {
	Added   []string    `json:"added"`
	Updated []string    `json:"updated"`
	Skipped []string    `json:"skipped"`
	Errors  []ItemError `json:"errors"`
}

// Total is the number of items the run looked at, including failures.
func (o *Outcome) Total() int {
	return len(o.Added) + len(o.Updated) + len(o.Skipped) + len(o.Errors)
}

// HasChanges reports whether anything was (or, in a dry run, would be) written.
func (o *Outcome) HasChanges() bool {
	return len(o.Added) > 0 || len(o.Updated) > 0
}

func (o *Outcome) HasErrors() bool {
	return len(o.Errors) > 0
}

// Merge appends other's items, used when syncing several base directories.
func (o *Outcome) Merge(other *Outcome) {
	if other == nil {
		return
	}
	o.Added = append(o.Added, other.Added...)
	o.Updated = append(o.Updated, other.Updated...)
	o.Skipped = append(o.Skipped, other.Skipped...)
	o.Errors = append(o.Errors, other.Errors...)
}

func (o *Outcome) record(name string, a action) {
	switch a {
	case actionAdd:
		o.Added = append(o.Added, name)
	case actionUpdate:
		o.Updated = append(o.Updated, name)
	default:
		o.Skipped = append(o.Skipped, name)
	}
}

func (o *Outcome) fail(name string, err error) {
	o.Errors = append(o.Errors, ItemError{Name: name, Message: err.Error()})
}
