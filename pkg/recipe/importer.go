package recipe

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ImportSummary struct {
		Created int
		Updated int
		Skipped int
	}

	// RecipeImporter loads recipes from archive CSV files. Columns:
	// "recipe name", "preparation time", "min_portion", "max_portion",
	// "ingredients", "steps". The ingredient and step columns hold
	// quoted list literals like `['Flour', 'Milk']`.
	RecipeImporter interface {
		ImportCSV(ctx context.Context, r io.Reader, ownerID string) (ImportSummary, error)
	}

	recipeImporter struct {
		recipeRepository RecipeRepository
	}
)

func NewRecipeImporter(recipeRepository RecipeRepository) RecipeImporter {
	return &recipeImporter{recipeRepository: recipeRepository}
}

// ImportCSV creates a recipe per row, keyed by name: a new name inserts the
// recipe with its ingredients and steps (step order assigned sequentially), an
// existing name updates the recipe's own fields and adds only the ingredients
// and steps not already present. Rows without a recipe name are skipped.
func (i *recipeImporter) ImportCSV(ctx context.Context, r io.Reader, ownerID string) (ImportSummary, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return ImportSummary{}, domain.ErrParseUUID
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	if _, ok := columns["recipe name"]; !ok {
		return ImportSummary{}, errors.New(`CSV is missing the "recipe name" column`)
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var summary ImportSummary
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("reading CSV row: %w", err)
		}

		name := field(row, "recipe name")
		if name == "" {
			summary.Skipped++
			continue
		}

		prepTime, err := parseOptionalFloat(field(row, "preparation time"))
		if err != nil {
			return summary, fmt.Errorf("recipe %q: %w", name, err)
		}
		minPortion, err := parseOptionalInt(field(row, "min_portion"))
		if err != nil {
			return summary, fmt.Errorf("recipe %q: %w", name, err)
		}
		maxPortion, err := parseOptionalInt(field(row, "max_portion"))
		if err != nil {
			return summary, fmt.Errorf("recipe %q: %w", name, err)
		}

		ingredientNames := parseListLiteral(field(row, "ingredients"))
		stepTexts := parseListLiteral(field(row, "steps"))

		existing, err := i.recipeRepository.GetRecipeByName(ctx, name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return summary, err
		}

		if existing == nil {
			if err := i.createRecipe(ctx, ownerUUID, name, prepTime, minPortion, maxPortion, ingredientNames, stepTexts); err != nil {
				return summary, err
			}
			summary.Created++
			continue
		}

		if err := i.updateRecipe(ctx, existing, prepTime, minPortion, maxPortion, ingredientNames, stepTexts); err != nil {
			return summary, err
		}
		summary.Updated++
	}

	return summary, nil
}

func (i *recipeImporter) createRecipe(ctx context.Context, ownerID uuid.UUID, name string, prepTime *float64, minPortion, maxPortion *int, ingredientNames, stepTexts []string) error {
	rec := entities.Recipe{
		ID:              uuid.New(),
		UserID:          ownerID,
		Name:            name,
		PreparationTime: prepTime,
		MinPortion:      minPortion,
		MaxPortion:      maxPortion,
	}
	for _, ingredientName := range ingredientNames {
		rec.Ingredients = append(rec.Ingredients, entities.Ingredient{
			ID:       uuid.New(),
			RecipeID: rec.ID,
			Name:     ingredientName,
		})
	}
	for idx, text := range stepTexts {
		rec.Steps = append(rec.Steps, entities.Step{
			ID:          uuid.New(),
			RecipeID:    rec.ID,
			Description: text,
			Order:       idx + 1,
		})
	}
	return i.recipeRepository.CreateRecipe(ctx, &rec)
}

func (i *recipeImporter) updateRecipe(ctx context.Context, existing *entities.Recipe, prepTime *float64, minPortion, maxPortion *int, ingredientNames, stepTexts []string) error {
	existing.PreparationTime = prepTime
	existing.MinPortion = minPortion
	existing.MaxPortion = maxPortion
	if err := i.recipeRepository.UpdateRecipeInfo(ctx, existing); err != nil {
		return err
	}

	haveIngredient := make(map[string]bool, len(existing.Ingredients))
	for _, ingredient := range existing.Ingredients {
		haveIngredient[ingredient.Name] = true
	}
	var newIngredients []entities.Ingredient
	for _, name := range ingredientNames {
		if haveIngredient[name] {
			continue
		}
		haveIngredient[name] = true
		newIngredients = append(newIngredients, entities.Ingredient{
			ID:       uuid.New(),
			RecipeID: existing.ID,
			Name:     name,
		})
	}
	if err := i.recipeRepository.AddIngredients(ctx, newIngredients); err != nil {
		return err
	}

	haveStep := make(map[string]bool, len(existing.Steps))
	for _, step := range existing.Steps {
		haveStep[stepKey(step.Order, step.Description)] = true
	}
	var newSteps []entities.Step
	for idx, text := range stepTexts {
		order := idx + 1
		if haveStep[stepKey(order, text)] {
			continue
		}
		newSteps = append(newSteps, entities.Step{
			ID:          uuid.New(),
			RecipeID:    existing.ID,
			Description: text,
			Order:       order,
		})
	}
	return i.recipeRepository.AddSteps(ctx, newSteps)
}

func stepKey(order int, description string) string {
	return fmt.Sprintf("%d\x00%s", order, description)
}

// parseListLiteral splits a list literal like `['Flour', 'Milk']` into its
// items; that is the format the archive CSVs carry ingredient and step
// columns in. Empty items are dropped.
func parseListLiteral(raw string) []string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "[]")
	if trimmed == "" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(trimmed, "', '") {
		part = strings.Trim(strings.TrimSpace(part), "'")
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

func parseOptionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	return &v, nil
}

func parseOptionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}
	return &v, nil
}
