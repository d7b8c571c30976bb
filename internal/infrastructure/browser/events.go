package browser

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/areashot/internal/domain/entity"
)

// pageEvent is the JSON payload page.js sends through the binding.
type pageEvent struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
	Key    string  `json:"key"`
}

func decodeEvent(payload string) (entity.InputEvent, error) {
	var pe pageEvent
	if err := json.Unmarshal([]byte(payload), &pe); err != nil {
		return entity.InputEvent{}, fmt.Errorf("decode page event: %w", err)
	}

	point := entity.ViewportPoint{X: pe.X, Y: pe.Y}
	switch pe.Type {
	case "start":
		return entity.InputEvent{Kind: entity.EventStart}, nil
	case "down":
		return entity.InputEvent{Kind: entity.EventPointerDown, Point: point, Button: pe.Button}, nil
	case "move":
		return entity.InputEvent{Kind: entity.EventPointerMove, Point: point, Button: pe.Button}, nil
	case "up":
		return entity.InputEvent{Kind: entity.EventPointerUp, Point: point, Button: pe.Button}, nil
	case "key":
		return entity.InputEvent{Kind: entity.EventKeyDown, Key: pe.Key}, nil
	default:
		return entity.InputEvent{}, fmt.Errorf("unknown page event type %q", pe.Type)
	}
}
