package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatLedger(t *testing.T) {
	ledger := newSeatLedger([]Batch{
		{ID: 1, SeatLimit: 2, SeatsTaken: 0},
		{ID: 2, SeatLimit: 3, SeatsTaken: 3},
		{ID: 3, SeatLimit: 5, SeatsTaken: 7},
	})

	assert.True(t, ledger.hasSeat(1))
	assert.True(t, ledger.take(1))
	assert.True(t, ledger.take(1))
	assert.False(t, ledger.take(1), "third take on a two-seat batch must fail")
	assert.Equal(t, 0, ledger.left(1))

	assert.False(t, ledger.hasSeat(2), "already full batch has no seats")
	assert.False(t, ledger.take(2))

	assert.Equal(t, 0, ledger.left(3), "overfilled counter clamps to zero")

	assert.False(t, ledger.take(99), "unknown batch never yields a seat")
}
