package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fieldservice/internal/adapters/out/postgres/activityrepo"
	"fieldservice/internal/adapters/out/postgres/assignmentrepo"
	"fieldservice/internal/adapters/out/postgres/persondirectory"
	"fieldservice/internal/adapters/out/postgres/statuscatalog"
	"fieldservice/internal/adapters/out/postgres/workorderrepo"
	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/workorder"
)

// Migrate creates the schema and seeds the status catalog. Catalog ids are
// stable: re-running against an already seeded database is a no-op.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&workorderrepo.WorkOrderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&activityrepo.ActivityEntryDTO{},
		&persondirectory.PersonDTO{},
		&statuscatalog.CatalogEntryDTO{},
	); err != nil {
		return err
	}

	return seedStatusCatalog(db)
}

// seedStatusCatalog inserts every status key of the three vocabularies with
// a fixed id. Existing rows are left untouched.
func seedStatusCatalog(db *gorm.DB) error {
	keys := []string{
		workorder.Created.Key(),
		workorder.Quote.Key(),
		workorder.PickedUp.Key(),
		workorder.Assigned.Key(),
		workorder.Issued.Key(),
		workorder.Confirmed.Key(),
		workorder.InProgress.Key(),
		workorder.InProgressAndHold.Key(),
		workorder.Completed.Key(),
		workorder.Canceled.Key(),
		assignment.WorkAssigned.Key(),
		assignment.WorkIssued.Key(),
		assignment.WorkConfirmed.Key(),
		assignment.WorkInProgress.Key(),
		assignment.WorkInProgressAndHold.Key(),
		assignment.WorkCompleted.Key(),
		assignment.WorkCanceled.Key(),
		assignment.RfqAssigned.Key(),
		assignment.RfqIssued.Key(),
		assignment.RfqConfirmed.Key(),
		assignment.RfqReceived.Key(),
		assignment.QuoteCanceled.Key(),
	}

	entries := make([]statuscatalog.CatalogEntryDTO, 0, len(keys))
	for i, key := range keys {
		entries = append(entries, statuscatalog.CatalogEntryDTO{ID: i + 1, Key: key})
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entries).Error
}
