package repository

import (
	"github.com/kuiz-app/kuiz/internal/model"
	"gorm.io/gorm"
)

type OptionRepository interface {
	FindByQuestionIDs(questionIDs []string) ([]model.Option, error)
}

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

// FindByQuestionIDs returns options ordered by label so that a question with
// more than one option flagged correct resolves deterministically to the
// lowest label.
func (r *optionRepository) FindByQuestionIDs(questionIDs []string) ([]model.Option, error) {
	var options []model.Option
	if len(questionIDs) == 0 {
		return options, nil
	}
	err := r.db.Where("question_id IN ?", questionIDs).Order("label ASC").Find(&options).Error
	return options, err
}
