package domain

import "time"

// Stage identifies one link of the custody chain. The chain is strictly
// linear: Sale -> Shipment -> Product -> Material.
type Stage string

const (
	StageMaterial Stage = "material"
	StageProduct  Stage = "product"
	StageShipment Stage = "shipment"
	StageSale     Stage = "sale"
)

// WriterRole is the account role allowed to create rows at this stage.
func (s Stage) WriterRole() Role {
	switch s {
	case StageMaterial, StageProduct:
		return RoleProducer
	case StageShipment:
		return RoleDistributor
	case StageSale:
		return RoleRetailer
	}
	return ""
}

// Material is the root of the chain.
type Material struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OwnerID      uint    `gorm:"not null;column:owner_id" json:"owner_id"`
	MaterialKind string  `gorm:"not null;column:material_kind" json:"material_kind"`
	Quantity     float64 `gorm:"not null;column:quantity" json:"quantity"`
	Origin       string  `gorm:"not null;column:origin" json:"origin"`
	SupplyDate   Date    `gorm:"not null;column:supply_date" json:"supply_date"`
	Label        string  `gorm:"column:label" json:"label"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Material) TableName() string { return "materials" }

// Product (the medicine) references exactly one Material.
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OwnerID     uint   `gorm:"not null;column:owner_id" json:"owner_id"`
	MaterialID  uint   `gorm:"not null;index;column:material_id" json:"material_id"`
	Name        string `gorm:"not null;column:name" json:"name"`
	BatchNumber string `gorm:"not null;column:batch_number" json:"batch_number"`
	ProducedOn  Date   `gorm:"not null;column:produced_on" json:"produced_on"`
	ExpiresOn   Date   `gorm:"not null;column:expires_on" json:"expires_on"`
	Label       string `gorm:"column:label" json:"label"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Product) TableName() string { return "products" }

type Shipment struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	OwnerID          uint   `gorm:"not null;column:owner_id" json:"owner_id"`
	ProductID        uint   `gorm:"not null;index;column:product_id" json:"product_id"`
	ShippedOn        Date   `gorm:"not null;column:shipped_on" json:"shipped_on"`
	TransportMode    string `gorm:"not null;column:transport_mode" json:"transport_mode"`
	Destination      string `gorm:"not null;column:destination" json:"destination"`
	StorageCondition string `gorm:"not null;column:storage_condition" json:"storage_condition"`
	Label            string `gorm:"column:label" json:"label"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Shipment) TableName() string { return "shipments" }

type Sale struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OwnerID    uint    `gorm:"not null;column:owner_id" json:"owner_id"`
	ShipmentID uint    `gorm:"not null;index;column:shipment_id" json:"shipment_id"`
	ReceivedOn Date    `gorm:"not null;column:received_on" json:"received_on"`
	Price      float64 `gorm:"not null;column:price" json:"price"`
	Location   string  `gorm:"not null;column:location" json:"location"`
	Label      string  `gorm:"column:label" json:"label"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Sale) TableName() string { return "sales" }

// History is the assembled provenance for one chain, keyed by a product or
// material id. Shipments and sales keep creation order.
type History struct {
	Material  *Material  `json:"material"`
	Medicine  *Product   `json:"medicine"`
	Shipments []Shipment `json:"shipments"`
	Sales     []Sale     `json:"sales"`
}
