package model

import "time"

// Message represents a private message between two users (table message).
type Message struct {
	ID         uint      `json:"idmessage" gorm:"column:idmessage;primaryKey"`
	Date       time.Time `json:"date" gorm:"column:date"`
	Texte      string    `json:"texte" gorm:"column:texte;type:text;not null"`
	EnvoyeurID uint      `json:"envoyeur" gorm:"column:envoyeur;not null;index"`
	ReceveurID uint      `json:"receveur" gorm:"column:receveur;not null;index"`

	Envoyeur *User `json:"-" gorm:"foreignKey:EnvoyeurID;references:ID;constraint:OnDelete:CASCADE"`
	Receveur *User `json:"-" gorm:"foreignKey:ReceveurID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (Message) TableName() string { return "message" }
