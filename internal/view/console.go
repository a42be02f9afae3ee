// Package view renders entity values as text. It holds no state of its own;
// everything it shows comes from the snapshot and roster handed to it.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/cardstackgames/president-client/internal/entity"
	"github.com/cardstackgames/president-client/internal/game"
)

// Console writes one frame of the game per applied snapshot.
type Console struct {
	out      io.Writer
	playerID string
}

func NewConsole(out io.Writer, playerID string) *Console {
	return &Console{
		out:      out,
		playerID: playerID,
	}
}

func (that *Console) Render(snapshot *entity.GameSnapshot, players []*entity.PlayerSummary, you *entity.PlayerSummary) {
	switch snapshot.Status {
	case entity.StatusLoading:
		fmt.Fprintln(that.out, "loading game...")
		return
	case entity.StatusWaiting:
		fmt.Fprintf(that.out, "waiting for players: %s\n", strings.Join(snapshot.WaitingPlayerIDs, ", "))
		fmt.Fprintln(that.out, `type "start" once at least two players have joined`)
		return
	case entity.StatusFinished:
		fmt.Fprintln(that.out, "game over")
		return
	}

	var b strings.Builder

	fmt.Fprintf(&b, "--- turn %d ---\n", snapshot.TurnNumber)

	if snapshot.TopCard != nil {
		fmt.Fprintf(&b, "last card: %c\n", snapshot.TopCard.Symbol())
	} else {
		back := entity.Card{Rank: entity.NoCardRank}
		fmt.Fprintf(&b, "last card: %c (empty pile)\n", back.Symbol())
	}

	for _, player := range players {
		marker := ""
		if status := player.DisplayStatus(snapshot.CurrentPlayerID); status != "" {
			marker = "  [" + status + "]"
		}

		fmt.Fprintf(&b, "%-16s %c %d%s\n", player.ID, entity.Card{Rank: entity.NoCardRank}.Symbol(), len(player.Hand), marker)
	}

	if you != nil {
		fmt.Fprintf(&b, "your hand (%s):\n", that.playerID)

		for _, card := range you.Hand {
			mark := " "
			if game.CanPlay(snapshot, that.playerID, card) {
				mark = "*"
			}

			fmt.Fprintf(&b, "  %s %c  play %d\n", mark, card.Symbol(), card.Value)
		}
	}

	fmt.Fprint(that.out, b.String())
}
