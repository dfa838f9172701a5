package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table this package
// owns. Used by cmd/seed and local development; production runs against an
// already migrated database.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&sportModel{},
		&bookingConfigModel{},
		&breakTimeModel{},
		&blackoutDateModel{},
		&timeSlotModel{},
		&bookingModel{},
		&playerModel{},
		&checkInLogModel{},
		&organizerCheckInLogModel{},
	)
}
