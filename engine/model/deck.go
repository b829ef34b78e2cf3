package model

import "math/rand"

// Deck is an ordered draw pile with an optional discard pile. When the pile
// runs out and discards exist, they are flushed back in shuffled.
type Deck[C any] struct {
	Cards    []C `json:"cards" msgpack:"cards"`
	Discards []C `json:"discards" msgpack:"discards"`
}

func NewDeck[C any](cards []C, rng *rand.Rand) *Deck[C] {
	d := &Deck[C]{Cards: cards, Discards: []C{}}
	d.shuffle(rng)
	return d
}

func (d *Deck[C]) shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Draw takes the top card. On an empty pile it flushes the discards back in
// first; it reports false only when both piles are empty.
func (d *Deck[C]) Draw(rng *rand.Rand) (C, bool) {
	if len(d.Cards) == 0 && len(d.Discards) > 0 {
		d.Flush(rng)
	}
	if len(d.Cards) == 0 {
		var zero C
		return zero, false
	}
	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card, true
}

func (d *Deck[C]) Discard(card C) {
	d.Discards = append(d.Discards, card)
}

// Flush moves the discards back into the draw pile, shuffled.
func (d *Deck[C]) Flush(rng *rand.Rand) {
	d.Cards = append(d.Cards, d.Discards...)
	d.Discards = []C{}
	d.shuffle(rng)
}

func (d *Deck[C]) Remaining() int { return len(d.Cards) }
