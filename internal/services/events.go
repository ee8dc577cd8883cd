package services

import (
	"encoding/json"
	"log"

	"github.com/nguyenchibao12/job-backend/internal/interfaces"
)

// publishEvent is fire-and-forget: notification failures are logged and
// never surfaced to the caller.
func publishEvent(producer interfaces.ProducerHandler, key string, event interface{}) {
	if producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("publish %s: marshal failed: %v", key, err)
		return
	}
	if err := producer.PublishMessage([]byte(key), payload); err != nil {
		log.Printf("publish %s failed: %v", key, err)
	}
}
