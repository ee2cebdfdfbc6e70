package sampleusers

// SampleUser references a designation and an address by id. AddressesID is
// owned by the address propagator and never written from client input.
type SampleUser struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"not null;index" json:"name"`
	Age           int    `gorm:"not null" json:"age"`
	DesignationID *uint  `gorm:"column:designation_id" json:"designation_id"`
	AddressesID   *uint  `gorm:"column:addresses_id" json:"addresses_id"`
}

func (SampleUser) TableName() string { return "sample_users" }

type Input struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	DesignationID uint   `json:"designation_id"`
}

// NameRow is one line of the joined name/title/address view.
type NameRow struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Address string `json:"address"`
}
