package entity

import "fmt"

const (
	SuitDiamonds = 0
	SuitClubs    = 1
	SuitHearts   = 2
	SuitSpades   = 3
)

// NoCardRank is the sentinel rank for "no card / face down".
const NoCardRank = -1

const (
	ColorRed   = "red"
	ColorBlack = "black"
)

// cardBackSymbol is the Unicode backface of a playing card.
const cardBackSymbol = '\U0001F0A0'

// suitOrigins holds the code point of the ace in each suit's Unicode block,
// indexed by suit.
var suitOrigins = [4]rune{
	'\U0001F0C1', // diamonds
	'\U0001F0D1', // clubs
	'\U0001F0B1', // hearts
	'\U0001F0A1', // spades
}

// Card is one card as reported by the server. Rank 0 is the "3", the lowest
// card in President, up to rank 12 for the "2". Playable is computed by the
// server for the querying player's hand on the current turn; it is not an
// intrinsic property of the card.
type Card struct {
	Value    int  `json:"value"`
	Rank     int  `json:"rank"`
	Suit     int  `json:"suit"`
	Playable bool `json:"playable"`
}

// PassCard is the placeholder submitted with a PASS move. It carries no card
// identity and must never be checked against the playable gate.
func PassCard() Card {
	return Card{Value: 0, Playable: true}
}

// Symbol maps the card onto its Unicode playing-card glyph. The sentinel rank
// always maps to the card back, regardless of suit. Any suit outside {0..3}
// on a real rank is a caller bug and panics.
func (that Card) Symbol() rune {
	if that.Rank == NoCardRank {
		return cardBackSymbol
	}

	// Shift by two to recover the conventional ace-first ordering used by
	// the Unicode blocks.
	offset := (that.Rank + 2) % 13
	if offset > 10 {
		// the Unicode blocks hold a knight card between jack and queen
		offset++
	}

	return suitOrigins[mustValidSuit(that.Suit)] + rune(offset)
}

// Color classifies the suit for presentation: diamonds and hearts are red,
// clubs and spades are black.
func (that Card) Color() string {
	if suit := mustValidSuit(that.Suit); suit == SuitDiamonds || suit == SuitHearts {
		return ColorRed
	}

	return ColorBlack
}

func mustValidSuit(suit int) int {
	if suit < SuitDiamonds || suit > SuitSpades {
		panic(fmt.Sprintf("card suit out of range: %d", suit))
	}

	return suit
}
