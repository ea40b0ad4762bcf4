package models

type VocabCategory struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CategoryName string      `gorm:"size:100;uniqueIndex;not null" json:"category_name"`
	Words        []VocabWord `gorm:"foreignKey:CategoryID" json:"words,omitempty"`
}

type VocabWord struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	CategoryID      uint   `gorm:"not null;index" json:"category_id"`
	English         string `gorm:"size:255;not null" json:"english"`
	Arabic          string `gorm:"size:255;not null" json:"arabic"`
	Transliteration string `gorm:"size:255" json:"transliteration,omitempty"`
}
