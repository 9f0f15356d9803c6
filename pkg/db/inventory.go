package db

import "time"

// CarInventory represents one vehicle on the lot.
type CarInventory struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	StockNumber string    `json:"stock_number" gorm:"size:50;uniqueIndex;not null"`
	VIN         string    `json:"vin" gorm:"size:50;uniqueIndex;not null"`
	Make        string    `json:"make" gorm:"size:50;not null;index"`
	Model       string    `json:"model" gorm:"size:50;not null;index"`
	Year        int       `json:"year" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Mileage     int       `json:"mileage"`
	Color       string    `json:"color" gorm:"size:50"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (*CarInventory) TableName() string {
	return "car_inventory"
}
