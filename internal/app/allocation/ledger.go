package allocation

// seatLedger tracks remaining seats per batch for the duration of one run.
// It is seeded from the snapshot's seat_limit/seats_taken pairs and consumed
// as passes hand out seats.
type seatLedger struct {
	remaining map[int64]int
}

func newSeatLedger(batches []Batch) *seatLedger {
	l := &seatLedger{remaining: make(map[int64]int, len(batches))}
	for _, b := range batches {
		left := b.SeatLimit - b.SeatsTaken
		if left < 0 {
			left = 0
		}
		l.remaining[b.ID] = left
	}
	return l
}

// hasSeat reports whether the batch still has at least one open seat.
func (l *seatLedger) hasSeat(batchID int64) bool {
	return l.remaining[batchID] > 0
}

// take consumes one seat from the batch. It reports false, without
// mutating the ledger, when the batch is full or unknown.
func (l *seatLedger) take(batchID int64) bool {
	if l.remaining[batchID] <= 0 {
		return false
	}
	l.remaining[batchID]--
	return true
}

// left returns the number of open seats for the batch.
func (l *seatLedger) left(batchID int64) int {
	return l.remaining[batchID]
}
