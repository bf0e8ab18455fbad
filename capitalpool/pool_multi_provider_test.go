package capitalpool

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ensuro-labs/covercore/clock"
	"github.com/ensuro-labs/covercore/fixedpoint"
)

// TestTotalSupplySumsManyDistinctProviders deposits from a batch of
// opaque, uuid-generated provider identifiers and checks that
// total_supply tracks the sum of principal exactly at t=0, independent of
// how many distinct providers contributed it.
func TestTotalSupplySumsManyDistinctProviders(t *testing.T) {
	clk := clock.NewManualClock(0)
	pool := mustPool(t, "P", year, clk)

	const depositors = 25
	want := fixedpoint.ZeroWad
	for i := 0; i < depositors; i++ {
		provider := Provider(uuid.NewString())
		amount := fixedpoint.WadFromInt64(int64(100 + i))
		if _, err := pool.Deposit(provider, amount); err != nil {
			t.Fatalf("Deposit: %v", err)
		}
		var err error
		want, err = want.Add(amount)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	total, err := pool.TotalSupply()
	if err != nil {
		t.Fatalf("TotalSupply: %v", err)
	}
	if total.Cmp(want) != 0 {
		t.Fatalf("total_supply: got %s want %s", total, want)
	}
}
