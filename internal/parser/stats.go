package parser

// Exclusion reasons. Excluded rows are well formed but are not spending.
const (
	ReasonReversal    = "reversal"
	ReasonDeposit     = "deposit"
	ReasonATM         = "atm"
	ReasonCardBill    = "card-bill"
	ReasonNonPositive = "non-positive"
)

// Stats counts the rows a parser has seen across all sheets it parsed.
type Stats struct {
	Sheets    int
	Rows      int
	Kept      int
	Excluded  int
	Malformed int
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Sheets:    s.Sheets + o.Sheets,
		Rows:      s.Rows + o.Rows,
		Kept:      s.Kept + o.Kept,
		Excluded:  s.Excluded + o.Excluded,
		Malformed: s.Malformed + o.Malformed,
	}
}

// Dropped is the number of rows that did not make it into the output.
func (s Stats) Dropped() int {
	return s.Excluded + s.Malformed
}
