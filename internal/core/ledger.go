package core

// Ledger is the ordered, append-only history of entries. Entries are never
// reordered, deduplicated or edited; index position decides what falls
// before or after a cycle close marker.
type Ledger struct {
	entries []Entry
}

// NewLedger builds a ledger from an already-ordered history snapshot.
func NewLedger(entries []Entry) *Ledger {
	l := &Ledger{entries: make([]Entry, len(entries))}
	copy(l.entries, entries)
	return l
}

// Append concatenates entries in order at the end of the history.
func (l *Ledger) Append(entries ...Entry) {
	l.entries = append(l.entries, entries...)
}

// All returns the full history in insertion order. The slice is a copy;
// callers cannot mutate the ledger through it.
func (l *Ledger) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries in the history.
func (l *Ledger) Len() int {
	return len(l.entries)
}
