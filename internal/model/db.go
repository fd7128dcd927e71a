package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ManagedObject{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Document{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&DocumentHistory{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&MigrationBackup{}); err != nil {
		return err
	}

	return nil
}
