package models

type Verb struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	EnglishVerb  string            `gorm:"size:255;not null" json:"english_verb"`
	ArabicVerb   string            `gorm:"size:255;not null" json:"arabic_verb"`
	Conjugations []VerbConjugation `gorm:"foreignKey:VerbID" json:"conjugations,omitempty"`
}

type VerbConjugation struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	VerbID      uint   `gorm:"not null;index" json:"verb_id"`
	Verb        Verb   `gorm:"foreignKey:VerbID" json:"-"`
	Tense       string `gorm:"size:50;not null" json:"tense"`
	Pronoun     string `gorm:"size:50;not null" json:"pronoun"`
	Conjugation string `gorm:"size:255;not null" json:"conjugation"`
}
