package domain

import "time"

type Role string

const (
	RoleProducer    Role = "Producer"
	RoleDistributor Role = "Distributor"
	RoleRetailer    Role = "Retailer"
	RoleConsumer    Role = "Consumer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleProducer, RoleDistributor, RoleRetailer, RoleConsumer:
		return true
	}
	return false
}

type Account struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string `gorm:"not null;column:last_name" json:"last_name"`
	Email     string `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Phone     string `gorm:"uniqueIndex;not null;column:phone" json:"phone"`
	Password  string `gorm:"not null;column:password" json:"-"`
	Role      Role   `gorm:"not null;column:role" json:"role"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Account) TableName() string { return "accounts" }
