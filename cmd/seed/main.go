package main

import (
	"log"
	"os"
	"time"

	"champ-voting-be/internal/model"
	"champ-voting-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		color.Red("Error: Failed to migrate schema: %v", err)
		os.Exit(1)
	}

	color.Cyan("🚀 Seeding voting data\n")

	// Reuse the newest session when one exists, otherwise start one
	var session model.VotingSession
	err = db.Order("created_at desc").First(&session).Error
	if err != nil {
		session = model.VotingSession{
			Id:          time.Now().Format("session_2006-01-02_15-04-05"),
			Title:       "Champion of the Week",
			Description: "Vote for your favorite champion",
			Status:      "active",
			CreatedAt:   time.Now(),
		}
		if err := db.Create(&session).Error; err != nil {
			color.Red("Error creating session: %v", err)
			os.Exit(1)
		}
		color.Green("Created session: %s", session.Id)
	} else {
		color.Yellow("Session '%s' already exists, seeding into it", session.Id)
	}

	champions := []model.Champion{
		{Name: "Ahri", Description: "The Nine-Tailed Fox"},
		{Name: "Garen", Description: "The Might of Demacia"},
		{Name: "Jinx", Description: "The Loose Cannon"},
		{Name: "Luxanna", Description: "The Lady of Luminosity"},
		{Name: "Yasuo", Description: "The Unforgiven"},
	}

	for _, c := range champions {
		// Skip champions already present in this session
		var existing model.Champion
		if err := db.Where("session_id = ? AND LOWER(name) = LOWER(?)", session.Id, c.Name).First(&existing).Error; err == nil {
			color.Yellow("Champion '%s' already exists, skipping...", c.Name)
			continue
		}

		c.SessionId = session.Id
		c.Votes = datatypes.NewJSONSlice([]string{})
		if err := db.Create(&c).Error; err != nil {
			color.Red("Error creating champion '%s': %v", c.Name, err)
		} else {
			color.Green("Created champion: %s", c.Name)
		}
	}

	color.Cyan("\nSeeding completed!")
}
