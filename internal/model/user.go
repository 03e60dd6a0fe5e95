package model

// User represents a registered user (table utilisateurs).
type User struct {
	ID           uint   `json:"idutilisateur" gorm:"column:idutilisateur;primaryKey"`
	Nom          string `json:"nom" gorm:"column:nom;size:255;not null"`
	Prenom       string `json:"prenom" gorm:"column:prenom;size:255;not null"`
	Age          int    `json:"age" gorm:"column:age"`
	Username     string `json:"username" gorm:"column:username;uniqueIndex;size:255;not null"`
	Numtel       string `json:"numtel" gorm:"column:numtel;size:32"`
	PhotoProfil  string `json:"photoprofil" gorm:"column:photoprofil;type:longtext"`
	Securise     bool   `json:"securise" gorm:"column:securise;default:false"`
	PasswordHash string `json:"-" gorm:"column:motdepasse;size:255;not null"` // Never expose in JSON
	EstAdmin     bool   `json:"estadmin" gorm:"column:estadmin;default:false"`
}

// TableName keeps the historical table name.
func (User) TableName() string { return "utilisateurs" }
