package record

// RawRow is one untyped row as extracted from a CSV or JSON source. Keys are
// normalized column names, values are the raw cell text; an absent key and an
// empty value both mean null.
type RawRow map[string]string

// RawBatch is an immutable in-memory batch of raw rows for one table kind.
type RawBatch struct {
	Kind Kind
	Rows []RawRow
}

func (b RawBatch) Len() int { return len(b.Rows) }
