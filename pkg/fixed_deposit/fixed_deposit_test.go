package fixed_deposit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_StoredDatesOutsideServerZone(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	stored := sampleDeposit()

	t.Run("evening before maturity is still active", func(t *testing.T) {
		d, err := Derive(stored, time.Date(2025, 1, 9, 21, 0, 0, 0, est))
		require.NoError(t, err)
		assert.Equal(t, 1, d.DaysToMaturity)
		assert.Equal(t, Active, d.Status)
		assert.Less(t, d.TermProgress, 100.0)
	})

	t.Run("maturity day is matured", func(t *testing.T) {
		d, err := Derive(stored, time.Date(2025, 1, 10, 9, 0, 0, 0, est))
		require.NoError(t, err)
		assert.Equal(t, 0, d.DaysToMaturity)
		assert.Equal(t, Matured, d.Status)
		assert.Equal(t, 100.0, d.TermProgress)
	})
}
