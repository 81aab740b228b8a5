package telegram

import "sync"

// One in-flight fetch or scoring call per chat. The state machine has
// no internal queuing, so the router refuses overlapping work instead.
var inFlight sync.Map // chatID -> struct{}

func tryAcquire(chatID int64) bool {
	_, loaded := inFlight.LoadOrStore(chatID, struct{}{})
	return !loaded
}

func release(chatID int64) { inFlight.Delete(chatID) }
