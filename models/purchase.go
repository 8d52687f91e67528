package models

// Purchase = a shop item bought with $GRIND. The spend itself lives in the
// ledger counters; this row is the receipt used for fulfilment.
type Purchase struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	WalletAddress string  `gorm:"index;not null" json:"wallet_address"`
	ItemID        string  `gorm:"index;not null" json:"item_id"`
	ItemName      string  `json:"item_name"`
	Amount        float64 `gorm:"not null" json:"amount"` // $GRIND paid
	Simulated     bool    `gorm:"default:true" json:"simulated"`

	Timestamps
}
