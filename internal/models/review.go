package models

import "time"

type Review struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	TitleID uint   `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Title   *Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`

	AuthorID uint  `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Author   *User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	Text  string `json:"text" gorm:"not null"`
	Score int    `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`

	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}

func (Review) TableName() string {
	return "reviews"
}

// AuthorUsername resolves the preloaded author for serialization.
func (r *Review) AuthorUsername() string {
	if r.Author == nil {
		return ""
	}
	return r.Author.Username
}

type Comment struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	ReviewID uint    `json:"-" gorm:"not null;index"`
	Review   *Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`

	AuthorID uint  `json:"-" gorm:"not null"`
	Author   *User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	Text string `json:"text" gorm:"not null"`

	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}

func (Comment) TableName() string {
	return "comments"
}
