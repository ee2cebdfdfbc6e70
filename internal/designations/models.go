package designations

type Designation struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
}

func (Designation) TableName() string { return "designations" }

// Input is the client-writable part of a designation.
type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
