package migration

import (
	entities2 "Recipe-Hub-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities2.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Step{}); err != nil {
		log.Fatalf("Error migrating step database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.UserIngredientCompletion{}); err != nil {
		log.Fatalf("Error migrating ingredient completion database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.UserStepCompletion{}); err != nil {
		log.Fatalf("Error migrating step completion database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.FavoriteRecipe{}); err != nil {
		log.Fatalf("Error migrating favorite recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.ReportEntry{}); err != nil {
		log.Fatalf("Error migrating report entry database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
