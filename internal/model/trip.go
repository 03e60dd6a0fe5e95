package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip represents a carpooling trip (table trajet).
type Trip struct {
	ID           uint            `json:"idtrajet" gorm:"column:idtrajet;primaryKey"`
	VilleDepart  string          `json:"villedepart" gorm:"column:villedepart;size:255;not null"`
	VilleArrivee string          `json:"villearrivee" gorm:"column:villearrivee;size:255;not null"`
	HeureDepart  time.Time       `json:"heuredepart" gorm:"column:heuredepart"`
	HeureArrivee time.Time       `json:"heurearrivee" gorm:"column:heurearrivee"`
	Prix         decimal.Decimal `json:"prix" gorm:"column:prix;type:decimal(10,2);not null"`
	ConducteurID uint            `json:"conducteur" gorm:"column:conducteur;not null;index"`

	Conducteur *User `json:"-" gorm:"foreignKey:ConducteurID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (Trip) TableName() string { return "trajet" }

// TripPassenger links a passenger to a trip (join table estpassager). The
// composite primary key makes duplicate registrations impossible at the
// database level.
type TripPassenger struct {
	TripID      uint `json:"trajet" gorm:"column:trajet;primaryKey"`
	PassengerID uint `json:"passager" gorm:"column:passager;primaryKey"`

	Trip      *Trip `json:"-" gorm:"foreignKey:TripID;references:ID;constraint:OnDelete:CASCADE"`
	Passenger *User `json:"-" gorm:"foreignKey:PassengerID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (TripPassenger) TableName() string { return "estpassager" }
