package engine

import "github.com/DoyleJ11/xiangqi-picker/internal/catalog"

// NewDefault returns an engine over the standard xiangqi catalog.
func NewDefault() *Engine {
	return New(catalog.Default())
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
