package model

// ComputerStatus is the reachability shown on the dashboard.
type ComputerStatus string

const (
	ComputerStatusOnline  ComputerStatus = "online"
	ComputerStatusOffline ComputerStatus = "offline"
)

// Computer represents a managed machine listed on the dashboard.
type Computer struct {
	ComputerID   string `json:"computer_id" gorm:"column:computer_id;primaryKey;size:32"`
	ComputerName string `json:"computer_name" gorm:"size:100;not null;index"`
	OwnerName    string `json:"owner_name" gorm:"size:100"`
	IPAddress    string `json:"ip_address" gorm:"size:45"`
}

func (Computer) TableName() string { return "computers" }
