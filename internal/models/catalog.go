package models

import "time"

type Article struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name   string  `gorm:"size:100;not null" json:"name"`
	Price  float64 `gorm:"type:numeric(12,2)" json:"price"`
	Active bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeType carries the commission rate. A nil percent means the type
// earns no commission.
type EmployeeType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name              string   `gorm:"size:50;not null" json:"name"`
	CommissionPercent *float64 `gorm:"type:numeric(5,2)" json:"commission_percent"`
}

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`
	Role string `gorm:"size:50" json:"role"`

	EmployeeTypeID *uint         `json:"employee_type_id"`
	EmployeeType   *EmployeeType `json:"employee_type,omitempty"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaymentMethod struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name   string `gorm:"size:50;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`
}
