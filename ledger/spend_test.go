package ledger

import (
	"testing"

	"grindspace-cafe/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSpendDebitsAndAccumulates(t *testing.T) {
	store := storage.NewMemoryKV()
	r := NewSpendRecorder(store, nil)
	require.NoError(t, r.EnsureStarterBalance("0xAAA"))

	require.NoError(t, r.RecordSpend("0xAAA", 2.5, ScopeBurn))

	balance, err := r.Balance("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, 7.5, balance, 1e-9)

	burned, err := r.BurnedBy("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, burned, 1e-9)

	total, err := r.TotalBurned()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, total, 1e-9)
}

func TestRecordSpendMonotonicTotals(t *testing.T) {
	store := storage.NewMemoryKV()
	r := NewSpendRecorder(store, nil)

	// Another wallet contributes to the global total first.
	require.NoError(t, r.RecordSpend("0xBBB", 100, ScopeBurn))
	globalBefore, err := r.TotalBurned()
	require.NoError(t, err)

	amounts := []float64{1, 2.25, 0.75, 10}
	var sum float64
	prevGlobal := globalBefore
	for _, a := range amounts {
		require.NoError(t, r.RecordSpend("0xAAA", a, ScopeBurn))
		sum += a

		global, err := r.TotalBurned()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, global, prevGlobal)
		prevGlobal = global
	}

	burned, err := r.BurnedBy("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, sum, burned, 1e-9)

	global, err := r.TotalBurned()
	require.NoError(t, err)
	assert.InDelta(t, globalBefore+sum, global, 1e-9)
	assert.GreaterOrEqual(t, global, sum)
}

func TestRecordSpendReadingScenario(t *testing.T) {
	store := storage.NewMemoryKV()
	r := NewSpendRecorder(store, nil)

	globalBefore, err := r.TotalBurned()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.RecordSpend("0xCCC", 4.20, ScopeReading))
	}

	burned, err := r.BurnedBy("0xCCC")
	require.NoError(t, err)
	assert.InDelta(t, 12.60, burned, 1e-9)

	global, err := r.TotalBurned()
	require.NoError(t, err)
	assert.InDelta(t, globalBefore+12.60, global, 1e-9)
}

func TestRecordSpendIgnoresInvalidInput(t *testing.T) {
	store := storage.NewMemoryKV()
	r := NewSpendRecorder(store, nil)

	require.NoError(t, r.RecordSpend("", 5, ScopeBurn))
	require.NoError(t, r.RecordSpend("0xAAA", 0, ScopeBurn))
	require.NoError(t, r.RecordSpend("0xAAA", -1, ScopeBurn))

	total, err := r.TotalBurned()
	require.NoError(t, err)
	assert.Zero(t, total)

	burned, err := r.BurnedBy("0xAAA")
	require.NoError(t, err)
	assert.Zero(t, burned)
}

func TestRecordSpendCanGoNegative(t *testing.T) {
	store := storage.NewMemoryKV()
	r := NewSpendRecorder(store, nil)

	// Sufficiency is the caller's job; the recorder just debits.
	require.NoError(t, r.RecordSpend("0xAAA", 5, ScopeBurn))

	balance, err := r.Balance("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, -5, balance, 1e-9)
}

func TestEnsureStarterBalanceIsIdempotent(t *testing.T) {
	store := storage.NewMemoryKV()
	r := NewSpendRecorder(store, nil)

	require.NoError(t, r.EnsureStarterBalance("0xAAA"))
	require.NoError(t, r.RecordSpend("0xAAA", 3, ScopeBurn))
	require.NoError(t, r.EnsureStarterBalance("0xAAA"))

	balance, err := r.Balance("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, 7, balance, 1e-9)
}
