package models

import "time"

type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID      uint  `gorm:"index" json:"client_id"`
	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	SoldAt       time.Time `json:"sold_at"`
	Observations string    `gorm:"size:500" json:"observations"`

	// IdempotencyKey deduplicates retried submissions.
	IdempotencyKey *string `gorm:"size:64;uniqueIndex" json:"-"`

	LineItems []SaleLineItem `gorm:"constraint:OnDelete:CASCADE;" json:"line_items"`
	Payments  []Payment      `gorm:"constraint:OnDelete:CASCADE;" json:"payments"`

	CreatedAt time.Time `json:"created_at"`
}

type SaleLineItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index" json:"sale_id"`

	ArticleID  uint    `json:"article_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"type:numeric(12,2)" json:"unit_price"`
	EmployeeID uint    `gorm:"index" json:"employee_id"`
}

type Payment struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index" json:"sale_id"`

	PaymentMethodID uint    `json:"payment_method_id"`
	Amount          float64 `gorm:"type:numeric(12,2)" json:"amount"`
}
