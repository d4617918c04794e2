package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// clearStatements empty the domain tables in foreign-key order.
var clearStatements = []string{
	`DELETE FROM procurement_awards`,
	`DELETE FROM feedback`,
	`DELETE FROM project_images`,
	`DELETE FROM projects`,
	`DELETE FROM contractors`,
	`DELETE FROM constituencies`,
}

// Reset wipes all domain data so a seed run starts from a clean slate. Users
// are kept: the admin account survives reseeding.
func Reset(ctx context.Context, database *gorm.DB) error {
	for _, stmt := range clearStatements {
		if err := database.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("clear table: %w", err)
		}
	}
	return nil
}
