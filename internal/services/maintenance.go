package services

import (
	"errors"
	"strings"

	"github.com/musa-q/MyArabicLearner/internal/models"

	"gorm.io/gorm"
)

// MaintenanceService mutates the reference content (categories, words, verbs,
// conjugations). Admin-only; quizzes reference this data by id and resolve
// answers at grading time, so edits take effect immediately.
type MaintenanceService struct {
	db *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{db: db}
}

func (s *MaintenanceService) UpdateFlashcard(wordID uint, categoryName, english, arabic, transliteration string) error {
	var category models.VocabCategory
	err := s.db.Where("category_name = ?", strings.ToLower(categoryName)).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var word models.VocabWord
	err = s.db.Where("id = ? AND category_id = ?", wordID, category.ID).First(&word).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	word.English = strings.ToLower(english)
	word.Arabic = arabic
	word.Transliteration = transliteration
	return s.db.Save(&word).Error
}

func (s *MaintenanceService) AddFlashcard(categoryID uint, english, arabic, transliteration string) (*models.VocabWord, error) {
	var category models.VocabCategory
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	word := models.VocabWord{
		CategoryID:      categoryID,
		English:         strings.ToLower(english),
		Arabic:          arabic,
		Transliteration: transliteration,
	}
	if err := s.db.Create(&word).Error; err != nil {
		return nil, err
	}
	return &word, nil
}

func (s *MaintenanceService) AddCategory(name string) (*models.VocabCategory, error) {
	category := models.VocabCategory{CategoryName: strings.ToLower(name)}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &category, nil
}

func (s *MaintenanceService) UpdateCategory(categoryID uint, newName string) error {
	result := s.db.Model(&models.VocabCategory{}).Where("id = ?", categoryID).
		Update("category_name", strings.ToLower(newName))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category together with its words.
func (s *MaintenanceService) DeleteCategory(categoryID uint) error {
	var category models.VocabCategory
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.VocabWord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

func (s *MaintenanceService) ListVerbs() ([]models.Verb, error) {
	var verbs []models.Verb
	err := s.db.Order("id ASC").Find(&verbs).Error
	return verbs, err
}

func (s *MaintenanceService) ListConjugations(verbID uint) ([]models.VerbConjugation, error) {
	var conjugations []models.VerbConjugation
	err := s.db.Where("verb_id = ?", verbID).Order("id ASC").Find(&conjugations).Error
	return conjugations, err
}

func (s *MaintenanceService) AddConjugation(verbID uint, tense, pronoun, conjugation string) (*models.VerbConjugation, error) {
	var verb models.Verb
	if err := s.db.First(&verb, verbID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	record := models.VerbConjugation{
		VerbID:      verbID,
		Tense:       tense,
		Pronoun:     pronoun,
		Conjugation: conjugation,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *MaintenanceService) UpdateConjugation(conjugationID uint, newConjugation string) error {
	result := s.db.Model(&models.VerbConjugation{}).Where("id = ?", conjugationID).
		Update("conjugation", newConjugation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
