package addresses

type Address struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null;index" json:"name"`
	Address string `gorm:"not null" json:"address"`
}

func (Address) TableName() string { return "addresses" }

type Input struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
