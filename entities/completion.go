package entities

import (
	"time"

	"github.com/google/uuid"
)

// At most one completion record exists per (user, item) pair.
type UserIngredientCompletion struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID `gorm:"uniqueIndex:idx_user_ingredient" json:"user_id"`
	IngredientID uuid.UUID `gorm:"uniqueIndex:idx_user_ingredient" json:"ingredient_id"`
	Completed    bool      `gorm:"default:false" json:"completed"`

	User       *User       `gorm:"foreignKey:UserID" json:"-"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type UserStepCompletion struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_step" json:"user_id"`
	StepID    uuid.UUID `gorm:"uniqueIndex:idx_user_step" json:"step_id"`
	Completed bool      `gorm:"default:false" json:"completed"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Step *Step `gorm:"foreignKey:StepID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

// Presence of a row means the recipe is favorited; there is no boolean flag.
type FavoriteRecipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"uniqueIndex:idx_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}
