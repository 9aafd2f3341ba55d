package models

import "time"

type Category struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:256;index"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null;size:50"`

	CreatedAt time.Time `json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

type Genre struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:256;index"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null;size:50"`

	CreatedAt time.Time `json:"-"`
}

func (Genre) TableName() string {
	return "genres"
}

type Title struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:500;index"`
	Year        int     `json:"year" gorm:"not null"`
	Description *string `json:"description"`

	// Category is nullable; deleting a category detaches its titles.
	CategoryID *uint     `json:"-"`
	Category   *Category `json:"category" gorm:"constraint:OnDelete:SET NULL"`
	Genres     []Genre   `json:"genre" gorm:"many2many:title_genres"`

	// Rating is derived per request as the mean review score, nil when the
	// title has no reviews. Never persisted.
	Rating *float64 `json:"rating" gorm:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Title) TableName() string {
	return "titles"
}
