package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jobtrackhq/jobtracker-api/internal/apperr"
	"github.com/jobtrackhq/jobtracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRepo(t *testing.T) (*ApplicationRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.JobApplication{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewApplicationRepository(db), db
}

func application(company, position string, daysAgo int) models.JobApplication {
	return models.JobApplication{
		CompanyName: company,
		Position:    position,
		Status:      models.StatusApplied,
		DateApplied: time.Now().UTC().AddDate(0, 0, -daysAgo),
	}
}

func mustCreate(t *testing.T, repo *ApplicationRepository, app models.JobApplication, userID uint) models.JobApplication {
	t.Helper()
	if err := repo.Create(&app, userID); err != nil {
		t.Fatalf("create %s/%s for user %d: %v", app.CompanyName, app.Position, userID, err)
	}
	return app
}

func TestCreateAssignsIDAndOwner(t *testing.T) {
	repo, db := testRepo(t)

	app := application("Acme", "Engineer", 3)
	app.UserID = 99 // client-supplied owner must be discarded
	if err := repo.Create(&app, 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	if app.ID == 0 {
		t.Error("expected a generated id")
	}

	var stored models.JobApplication
	if err := db.First(&stored, app.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.UserID != 1 {
		t.Errorf("expected owner 1, got %d", stored.UserID)
	}
}

func TestListScopedToOwnerAndOrdered(t *testing.T) {
	repo, _ := testRepo(t)

	oldest := mustCreate(t, repo, application("Acme", "Engineer", 10), 1)
	newest := mustCreate(t, repo, application("Globex", "Manager", 1), 1)
	middle := mustCreate(t, repo, application("Initech", "Analyst", 5), 1)
	mustCreate(t, repo, application("Hooli", "Engineer", 2), 2)

	apps, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 3 {
		t.Fatalf("expected 3 applications for user 1, got %d", len(apps))
	}
	wantOrder := []uint{newest.ID, middle.ID, oldest.ID}
	for i, want := range wantOrder {
		if apps[i].ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, apps[i].ID)
		}
	}
	for _, a := range apps {
		if a.UserID != 1 {
			t.Errorf("foreign record leaked into listing: %+v", a)
		}
	}
}

func TestGetByIDCrossUserReadsAsNotFound(t *testing.T) {
	repo, _ := testRepo(t)

	app := mustCreate(t, repo, application("Acme", "Engineer", 3), 1)

	got, err := repo.GetByID(app.ID, 1)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.CompanyName != "Acme" {
		t.Errorf("unexpected record: %+v", got)
	}

	// Another user sees the same id as nonexistent, not forbidden.
	if _, err := repo.GetByID(app.ID, 2); !apperr.IsNotFound(err) {
		t.Errorf("expected not found for cross-user read, got %v", err)
	}
	if _, err := repo.GetByID(9999, 1); !apperr.IsNotFound(err) {
		t.Errorf("expected not found for missing id, got %v", err)
	}
}

func TestCreateRejectsFutureDate(t *testing.T) {
	repo, _ := testRepo(t)

	app := application("Acme", "Engineer", 0)
	app.DateApplied = time.Now().UTC().Add(48 * time.Hour)
	err := repo.Create(&app, 1)
	errs, ok := apperr.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(errs["DateApplied"]) == 0 {
		t.Errorf("expected DateApplied error, got %v", errs)
	}
}

func TestCreateRejectsDuplicatePairPerOwner(t *testing.T) {
	repo, _ := testRepo(t)

	mustCreate(t, repo, application("Acme", "Engineer", 3), 1)

	dup := application("Acme", "Engineer", 1)
	err := repo.Create(&dup, 1)
	errs, ok := apperr.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(errs["Application"]) == 0 || errs["Application"][0] != "A similar application already exists" {
		t.Errorf("unexpected errors: %v", errs)
	}

	// The same pair under a different owner is fine.
	other := application("Acme", "Engineer", 1)
	if err := repo.Create(&other, 2); err != nil {
		t.Errorf("different owner should not collide: %v", err)
	}
}

func TestValidationAggregatesAllFailures(t *testing.T) {
	repo, _ := testRepo(t)

	mustCreate(t, repo, application("Acme", "Engineer", 3), 1)

	bad := application("Acme", "Engineer", 0)
	bad.DateApplied = time.Now().UTC().Add(24 * time.Hour)
	err := repo.Create(&bad, 1)
	errs, ok := apperr.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(errs["DateApplied"]) == 0 || len(errs["Application"]) == 0 {
		t.Errorf("expected both failures reported together, got %v", errs)
	}
}

func TestUpdateReplacesFields(t *testing.T) {
	repo, db := testRepo(t)

	app := mustCreate(t, repo, application("Acme", "Engineer", 5), 1)

	updated := application("Acme", "Senior Engineer", 5)
	updated.ID = app.ID
	updated.Status = models.StatusInterview
	if err := repo.Update(&updated, 1); err != nil {
		t.Fatalf("update: %v", err)
	}

	var stored models.JobApplication
	if err := db.First(&stored, app.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Position != "Senior Engineer" || stored.Status != models.StatusInterview {
		t.Errorf("fields not replaced: %+v", stored)
	}
	if stored.UserID != 1 {
		t.Errorf("owner changed: %d", stored.UserID)
	}
	if stored.Version != 2 {
		t.Errorf("expected version bump to 2, got %d", stored.Version)
	}
}

func TestUpdateMissingOrForeignIsNotFound(t *testing.T) {
	repo, db := testRepo(t)

	app := mustCreate(t, repo, application("Acme", "Engineer", 5), 1)

	missing := application("Globex", "Manager", 1)
	missing.ID = 9999
	if err := repo.Update(&missing, 1); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	// A different user updating an existing id also gets not found, and the
	// row stays untouched.
	foreign := application("Globex", "Manager", 1)
	foreign.ID = app.ID
	if err := repo.Update(&foreign, 2); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for cross-user update, got %v", err)
	}

	var stored models.JobApplication
	if err := db.First(&stored, app.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.CompanyName != "Acme" || stored.Version != 1 {
		t.Errorf("row mutated by rejected update: %+v", stored)
	}
}

func TestUpdateDuplicateExcludesSelf(t *testing.T) {
	repo, _ := testRepo(t)

	app := mustCreate(t, repo, application("Acme", "Engineer", 5), 1)

	// Re-saving the same pair under its own id is not a duplicate.
	same := application("Acme", "Engineer", 5)
	same.ID = app.ID
	same.Status = models.StatusOffer
	if err := repo.Update(&same, 1); err != nil {
		t.Fatalf("self update: %v", err)
	}

	// Colliding with a sibling record is.
	mustCreate(t, repo, application("Globex", "Manager", 2), 1)
	collide := application("Globex", "Manager", 2)
	collide.ID = app.ID
	err := repo.Update(&collide, 1)
	errs, ok := apperr.AsValidation(err)
	if !ok || len(errs["Application"]) == 0 {
		t.Fatalf("expected duplicate validation error, got %v", err)
	}
}

func TestUpdateConflictOnConcurrentWrite(t *testing.T) {
	repo, db := testRepo(t)

	app := mustCreate(t, repo, application("Acme", "Engineer", 5), 1)

	// Simulate a writer that sneaks in between the repository's read and its
	// guarded write by bumping the version out of band right before the
	// update statement runs.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	raced := false
	err = db.Callback().Update().Before("gorm:update").Register("test:concurrent_writer", func(tx *gorm.DB) {
		if raced {
			return
		}
		raced = true
		if _, err := sqlDB.Exec("UPDATE job_applications SET version = version + 1 WHERE id = ?", app.ID); err != nil {
			t.Errorf("out-of-band update: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	stale := application("Acme", "Staff Engineer", 5)
	stale.ID = app.ID
	if err := repo.Update(&stale, 1); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The losing write must not have applied.
	var stored models.JobApplication
	if err := db.First(&stored, app.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Position != "Engineer" {
		t.Errorf("stale write applied: %+v", stored)
	}
}
