package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// nextDocumentNumber generates the next document number for a year-scoped
// sequence in the form PREFIX-YYYY-NNNN. The sequence restarts every
// calendar year; the unique index on the number column catches the rare
// race between two concurrent generators.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	year := time.Now().Year()
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)

	var maxNumber string
	if err := db.WithContext(ctx).
		Model(model).
		Select(column).
		Where(column+" LIKE ?", pattern).
		Order(column + " DESC").
		Limit(1).
		Scan(&maxNumber).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	nextSeq := 1
	if maxNumber != "" {
		var seq int
		tail := maxNumber[strings.LastIndex(maxNumber, "-")+1:]
		if _, err := fmt.Sscanf(tail, "%d", &seq); err == nil {
			nextSeq = seq + 1
		}
	}

	return fmt.Sprintf("%s-%d-%04d", prefix, year, nextSeq), nil
}
