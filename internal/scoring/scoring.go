// Package scoring implements the run-aware point rules: when a hand holds a
// run of consecutive cards, only the lowest card of the run scores.
package scoring

import (
	"sort"

	"github.com/cardtable/nothanks/internal/model"
)

// CardPoints scores a set of held cards. Cards are sorted ascending and
// partitioned into maximal consecutive runs; each run contributes only its
// lowest card to the total. An empty hand scores 0 with no runs.
func CardPoints(cards []model.Card) model.HandValue {
	if len(cards) == 0 {
		return model.HandValue{}
	}

	sorted := make([]model.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var result model.HandValue
	run := []model.Card{sorted[0]}
	for _, c := range sorted[1:] {
		if c == run[len(run)-1]+1 {
			run = append(run, c)
			continue
		}
		result.Total += int(run[0])
		result.Runs = append(result.Runs, run)
		run = []model.Card{c}
	}
	result.Total += int(run[0])
	result.Runs = append(result.Runs, run)

	return result
}

// ProjectedScore returns the final score the seat would have if it took
// the given card right now: the hand plus the card scored under the run
// rule, minus the chips it would then hold. The seat is not modified.
func ProjectedScore(seat model.Seat, card model.Card, chipsOnCard int) int {
	hand := make([]model.Card, 0, len(seat.Cards)+1)
	hand = append(hand, seat.Cards...)
	hand = append(hand, card)
	return CardPoints(hand).Total - (seat.Chips + chipsOnCard)
}

// ComputeScores builds the final score table for a finished game: one entry
// per seat, total = card points minus remaining chips, sorted ascending by
// total. The sort is stable so ties keep seat order; index 0 is the winner.
func ComputeScores(seats []model.Seat) []model.ScoreEntry {
	entries := make([]model.ScoreEntry, 0, len(seats))
	for _, seat := range seats {
		hand := CardPoints(seat.Cards)
		entries = append(entries, model.ScoreEntry{
			PlayerID:    seat.PlayerID,
			DisplayName: seat.DisplayName,
			Total:       hand.Total - seat.Chips,
			CardPoints:  hand.Total,
			ChipPoints:  seat.Chips,
			Runs:        hand.Runs,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total < entries[j].Total
	})

	return entries
}
