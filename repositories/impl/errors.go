package impl

import (
	"BabyTracker/repositories"
	"errors"

	"gorm.io/gorm"
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}
