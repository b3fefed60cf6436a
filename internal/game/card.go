package game

// Pair represents two related display strings sharing one identifier
type Pair struct {
	PairID string `json:"pairId"`
	Item1  string `json:"item1"`
	Item2  string `json:"item2"`
}

// Card is one face of a pair on the board
type Card struct {
	ID        string
	PairID    string
	Content   string
	IsFlipped bool
	IsMatched bool
}

// Pending reports whether the card is face-up but not yet resolved
func (c Card) Pending() bool {
	return c.IsFlipped && !c.IsMatched
}

// CardID returns the card identifier for one side of a pair.
// Side "a" holds Item1, side "b" holds Item2.
func CardID(pairID, side string) string {
	return pairID + "-" + side
}
