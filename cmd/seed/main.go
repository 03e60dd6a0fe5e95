package main

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"covoiturage/internal/auth"
	"covoiturage/internal/config"
	"covoiturage/internal/db"
	"covoiturage/internal/model"
)

type seedUser struct {
	Nom      string
	Prenom   string
	Age      int
	Username string
	Numtel   string
	Password string
	EstAdmin bool
}

var seedUsers = []seedUser{
	{Nom: "Martin", Prenom: "Claire", Age: 34, Username: "claire.martin", Numtel: "0601020304", Password: "motdepasse1", EstAdmin: true},
	{Nom: "Durand", Prenom: "Lucas", Age: 27, Username: "lucas.durand", Numtel: "0605060708", Password: "motdepasse2"},
	{Nom: "Bernard", Prenom: "Emma", Age: 22, Username: "emma.bernard", Numtel: "0609101112", Password: "motdepasse3"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Car{},
		&model.Trip{},
		&model.TripPassenger{},
		&model.Review{},
		&model.Message{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	users := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		var existing model.User
		err := gormDB.Where("username = ?", su.Username).First(&existing).Error
		if err == nil {
			users[su.Username] = &existing
			log.Printf("User %s already present, skipping", su.Username)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", su.Username, err)
		}

		hash, err := hasher.Hash(su.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Username, err)
		}
		user := &model.User{
			Nom:          su.Nom,
			Prenom:       su.Prenom,
			Age:          su.Age,
			Username:     su.Username,
			Numtel:       su.Numtel,
			PasswordHash: hash,
			EstAdmin:     su.EstAdmin,
		}
		if err := gormDB.Create(user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Username, err)
		}
		users[su.Username] = user
		log.Printf("Created user %s (id %d)", su.Username, user.ID)
	}

	driver := users["lucas.durand"]
	passenger := users["emma.bernard"]

	car := &model.Car{
		PlaqueImat:     "AB-123-CD",
		Marque:         "Renault",
		Modele:         "Clio",
		Couleur:        "bleu",
		ProprietaireID: driver.ID,
	}
	if err := gormDB.FirstOrCreate(car, model.Car{PlaqueImat: car.PlaqueImat}).Error; err != nil {
		log.Fatalf("Failed to seed car: %v", err)
	}

	departure := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	trip := &model.Trip{
		VilleDepart:  "Lyon",
		VilleArrivee: "Grenoble",
		HeureDepart:  departure,
		HeureArrivee: departure.Add(90 * time.Minute),
		Prix:         decimal.NewFromFloat(12.50),
		ConducteurID: driver.ID,
	}
	if err := gormDB.FirstOrCreate(trip, model.Trip{VilleDepart: trip.VilleDepart, VilleArrivee: trip.VilleArrivee, ConducteurID: driver.ID}).Error; err != nil {
		log.Fatalf("Failed to seed trip: %v", err)
	}

	registration := &model.TripPassenger{TripID: trip.ID, PassengerID: passenger.ID}
	if err := gormDB.FirstOrCreate(registration, *registration).Error; err != nil {
		log.Fatalf("Failed to seed passenger registration: %v", err)
	}

	review := &model.Review{
		Note:       5,
		Date:       time.Now(),
		Texte:      "Conducteur ponctuel et sympathique.",
		EnvoyeurID: passenger.ID,
		ReceveurID: driver.ID,
	}
	if err := gormDB.FirstOrCreate(review, model.Review{EnvoyeurID: review.EnvoyeurID, ReceveurID: review.ReceveurID}).Error; err != nil {
		log.Fatalf("Failed to seed review: %v", err)
	}

	message := &model.Message{
		Date:       time.Now(),
		Texte:      "Bonjour, est-ce qu'il reste une place pour samedi ?",
		EnvoyeurID: passenger.ID,
		ReceveurID: driver.ID,
	}
	if err := gormDB.FirstOrCreate(message, model.Message{EnvoyeurID: message.EnvoyeurID, ReceveurID: message.ReceveurID}).Error; err != nil {
		log.Fatalf("Failed to seed message: %v", err)
	}

	log.Println("Seed completed")
}
