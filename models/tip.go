package models

// Tip records a $GRIND tip sent to a partner farmer. Fiat tips go through the
// payment provider and never reach this service.
type Tip struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	WalletAddress string  `gorm:"index;not null" json:"wallet_address"`
	Farmer        string  `gorm:"not null" json:"farmer"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Currency      string  `gorm:"not null;default:'GRIND'" json:"currency"`

	Timestamps
}
