package repository

import (
	"github.com/kuiz-app/kuiz/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	CreateBatch(answers []model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) CreateBatch(answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.Create(&answers).Error
}
