package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:text;not null"`
	Source    string    `gorm:"type:varchar(50);default:'upload'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
