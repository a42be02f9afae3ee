package pkg

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePlayerID returns a short random seat identifier for configs that
// do not pin one.
func GeneratePlayerID() string {
	return "player-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}
