package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cardstackgames/president-client/internal/apperror"
	"github.com/cardstackgames/president-client/internal/entity"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote game-rule service. Every non-2xx response is
// converted into an *apperror.RejectedError carrying the parsed error
// document before it reaches anything above this layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// GetGame fetches the current snapshot for the game.
func (that *Client) GetGame(ctx context.Context, gameID string) (*entity.GameSnapshot, error) {
	snapshot := &entity.GameSnapshot{}
	if err := that.do(ctx, http.MethodGet, "/games/"+gameID, nil, snapshot); err != nil {
		return nil, fmt.Errorf("failed to fetch game: %w", err)
	}

	return snapshot, nil
}

// GetPlayer fetches one player's summary, including the hand with playable
// flags authoritative for the current turn.
func (that *Client) GetPlayer(ctx context.Context, gameID, playerID string) (*entity.PlayerSummary, error) {
	player := &entity.PlayerSummary{}
	if err := that.do(ctx, http.MethodGet, "/games/"+gameID+"/players/"+playerID, nil, player); err != nil {
		return nil, fmt.Errorf("failed to fetch player %s: %w", playerID, err)
	}

	return player, nil
}

// SubmitMove sends one move and returns the authoritative snapshot embedded
// in the response.
func (that *Client) SubmitMove(ctx context.Context, gameID string, move entity.MoveRequest) (*entity.GameSnapshot, error) {
	var response struct {
		Game *entity.GameSnapshot `json:"game"`
	}

	if err := that.do(ctx, http.MethodPost, "/games/"+gameID+"/play", move, &response); err != nil {
		return nil, err
	}

	return response.Game, nil
}

// StartGame asks the server to start the game. The status transition is not
// returned here; it shows up on the next snapshot fetch.
func (that *Client) StartGame(ctx context.Context, gameID string) error {
	if err := that.do(ctx, http.MethodPost, "/games/"+gameID+"/start", nil, nil); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return nil
}

// JoinGame claims a seat in the waiting room.
func (that *Client) JoinGame(ctx context.Context, gameID, playerID string) error {
	body := struct {
		PlayerID string `json:"player_id"`
	}{PlayerID: playerID}

	if err := that.do(ctx, http.MethodPost, "/games/"+gameID+"/join", body, nil); err != nil {
		return fmt.Errorf("failed to join game: %w", err)
	}

	return nil
}

func (that *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return rejectedFromResponse(resp)
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response body: %w", err)
	}

	return nil
}

func rejectedFromResponse(resp *http.Response) error {
	var doc struct {
		Errors []string `json:"errors"`
	}

	// an unparsable body still yields a rejection, just without messages
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return &apperror.RejectedError{StatusCode: resp.StatusCode}
	}

	return &apperror.RejectedError{StatusCode: resp.StatusCode, Messages: doc.Errors}
}
