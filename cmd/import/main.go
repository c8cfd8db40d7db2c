package main

import (
	"Recipe-Hub-Backend/cmd/config"
	migration "Recipe-Hub-Backend/cmd/database/migrate"
	"Recipe-Hub-Backend/internal/utils"
	"Recipe-Hub-Backend/pkg/recipe"
	"Recipe-Hub-Backend/pkg/user"
	"context"
	"flag"
	"log"
	"os"
)

// Imports recipes from an archive CSV file, assigning them to the user named
// by -owner. Usage: import -owner chef@example.com archives_csv/chilean_recipes.csv
func main() {
	ownerEmail := flag.String("owner", "", "email of the user the imported recipes belong to")
	flag.Parse()

	if *ownerEmail == "" || flag.NArg() != 1 {
		log.Fatal("usage: import -owner <email> <csv-file>")
	}
	csvPath := flag.Arg(0)

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()

	userRepository := user.NewUserRepository(db)
	owner, err := userRepository.GetUserByEmail(ctx, *ownerEmail)
	if err != nil {
		log.Fatalf("Failed to find owner %q: %v", *ownerEmail, err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	importer := recipe.NewRecipeImporter(recipe.NewRecipeRepository(db))
	summary, err := importer.ImportCSV(ctx, file, owner.ID.String())
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete: %d created, %d updated, %d skipped", summary.Created, summary.Updated, summary.Skipped)
}
