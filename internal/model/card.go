package model

// Card is a single card value in the deck
type Card int

// Fixed deck parameters. The card range, removed-pile size and starting
// chip count are the classic ruleset and are not configurable.
const (
	MinCard       Card = 3
	MaxCard       Card = 35
	RemovedCards       = 9
	StartingChips      = 11
)

// TotalCards is the number of distinct cards in the full range
const TotalCards = int(MaxCard-MinCard) + 1

// DeckSize is the number of cards actually dealt in a match
// (the full range minus the removed pile)
const DeckSize = TotalCards - RemovedCards

// FullRange returns every card in [MinCard, MaxCard] in ascending order
func FullRange() []Card {
	cards := make([]Card, 0, TotalCards)
	for c := MinCard; c <= MaxCard; c++ {
		cards = append(cards, c)
	}
	return cards
}
