package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	PreparationTime *float64  `json:"preparation_time,omitempty"` // in minutes
	MinPortion      *int      `json:"min_portion,omitempty"`
	MaxPortion      *int      `json:"max_portion,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`

	User        *User        `gorm:"foreignKey:UserID" json:"-"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Steps       []Step       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`
	Timestamp
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"index" json:"recipe_id"`
	Name     string    `json:"name"`
}

// Step order is trusted as stored: not guaranteed unique or contiguous per recipe.
type Step struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `gorm:"index" json:"recipe_id"`
	Description string    `gorm:"type:text" json:"description"`
	Order       int       `gorm:"column:step_order" json:"order"`
}
