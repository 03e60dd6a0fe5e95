package model

// Car represents a car owned by a user (table voiture), keyed by its license
// plate.
type Car struct {
	PlaqueImat     string `json:"plaqueimat" gorm:"column:plaqueimat;primaryKey;size:32"`
	Marque         string `json:"marque" gorm:"column:marque;size:255"`
	Modele         string `json:"modele" gorm:"column:modele;size:255"`
	Couleur        string `json:"couleur" gorm:"column:couleur;size:255"`
	ProprietaireID uint   `json:"proprietaire" gorm:"column:proprietaire;not null;index"`

	Proprietaire *User `json:"-" gorm:"foreignKey:ProprietaireID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (Car) TableName() string { return "voiture" }
