package domain

import (
	"time"

	"github.com/google/uuid"
)

type Variant struct {
	ID          uuid.UUID
	ProductName string
	ProducerID  uuid.UUID
	Price       Money

	DeletedAt *time.Time
}

func (v Variant) Deleted() bool {
	return v.DeletedAt != nil
}
