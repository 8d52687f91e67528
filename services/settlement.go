// services/settlement.go
package services

import (
	"fmt"
	"time"
)

// Settlement stands between a validated spend request and the ledger write.
// With no Transfer configured it simulates the transaction with a fixed delay
// (the ledger mutation still applies once the delay resolves, even if the
// client went away). With a Transfer it executes the real on-chain debit and
// the ledger is only touched after that resolves successfully.
type Settlement struct {
	// Transfer is the optional real transfer executor supplied by the wallet
	// integration. nil means simulate.
	Transfer func(address string, amount float64) error

	// Delay is the simulated confirmation time. The front-end used 1s.
	Delay time.Duration
}

func NewSimulatedSettlement(delay time.Duration) *Settlement {
	return &Settlement{Delay: delay}
}

// Settle blocks until the debit is confirmed. An error means nothing was
// spent and the ledger must not be touched.
func (s *Settlement) Settle(address string, amount float64) error {
	if s.Transfer != nil {
		if err := s.Transfer(address, amount); err != nil {
			return fmt.Errorf("on-chain transfer for %s: %w", address, err)
		}
		return nil
	}
	time.Sleep(s.Delay)
	return nil
}
