package utils

import (
	"log"
	"strings"
)

// LogEvent prints one line per domain event. page is the officer page the
// event belongs to, action the dispatched form action. Keep message short
// and free of user payload.
func LogEvent(requestID, page, action, message string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(strings.TrimSpace(page)), action, strings.TrimSpace(requestID), message)
}
