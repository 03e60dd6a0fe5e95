package model

import "time"

// Review represents a rating left by one user for another (table avis).
type Review struct {
	ID         uint      `json:"idavis" gorm:"column:idavis;primaryKey"`
	Note       int       `json:"note" gorm:"column:note;not null"`
	Date       time.Time `json:"date" gorm:"column:date"`
	Texte      string    `json:"texte" gorm:"column:texte;type:text"`
	EnvoyeurID uint      `json:"envoyeur" gorm:"column:envoyeur;not null;index"`
	ReceveurID uint      `json:"receveur" gorm:"column:receveur;not null;index"`

	Envoyeur *User `json:"-" gorm:"foreignKey:EnvoyeurID;references:ID;constraint:OnDelete:CASCADE"`
	Receveur *User `json:"-" gorm:"foreignKey:ReceveurID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (Review) TableName() string { return "avis" }
