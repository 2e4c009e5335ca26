package statfeed

import (
	"context"
	"fmt"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	drepo "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"
	xhttp "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/http"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/util"
)

// SlateClient pulls the day's offered prop lines over the provider's REST
// API. The WebSocket feed carries finished-game stat lines; offered lines
// come from a separate daily endpoint.
type SlateClient struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// NewSlateClient creates a SlateFeed over the provider REST API.
func NewSlateClient(apiKey, baseURL string) drepo.SlateFeed {
	return &SlateClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(15 * time.Second)),
	}
}

type slateProp struct {
	PlayerID  string  `json:"player_id"`
	Stat      string  `json:"stat"`
	Line      float64 `json:"line"`
	Team      string  `json:"team"`
	Direction string  `json:"direction"`
}

type slateResponse struct {
	Sport string      `json:"sport"`
	Date  string      `json:"date"`
	Props []slateProp `json:"props"`
}

// FetchSlate retrieves the offered props for one sport and date.
func (c *SlateClient) FetchSlate(ctx context.Context, sport string, date time.Time) ([]models.PropDescriptor, error) {
	var resp slateResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v1/props",
		QueryParams: map[string][]string{
			"sport": {sport},
			"date":  {util.DateOnly(date)},
			"token": {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch slate %s: %w", sport, err)
	}

	props := make([]models.PropDescriptor, 0, len(resp.Props))
	for _, p := range resp.Props {
		if p.PlayerID == "" || p.Stat == "" {
			continue
		}
		dir := models.Direction(p.Direction)
		if dir != models.DirectionOver && dir != models.DirectionUnder {
			dir = models.DirectionOver
		}
		props = append(props, models.PropDescriptor{
			PlayerID:  p.PlayerID,
			Stat:      p.Stat,
			Line:      p.Line,
			Team:      p.Team,
			Direction: dir,
		})
	}
	return props, nil
}
