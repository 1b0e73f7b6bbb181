package index

// Item is a named, weighted entry supplied by the caller.
type Item struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// PostingList holds internal item positions for one token, in input order.
// A position appears once per occurrence of the token in that item's name.
type PostingList []int

// Stats summarises an index for logging and metrics.
type Stats struct {
	Items    int
	Tokens   int
	Postings int
}
