package repository_test

import (
	"os"
	"testing"

	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/repository"
	testingutil "github.com/casinoradar/casinoradar/testing"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireTestDB skips integration tests unless a PostgreSQL instance is
// configured through TEST_DB_HOST.
func requireTestDB(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST not set, skipping database integration test")
	}
}

func TestAdminUserRepositoryIntegration(t *testing.T) {
	requireTestDB(t)

	err := testingutil.TestWithDB(func(db *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(db)
		repo := repository.NewAdminUserRepository(db.DB)

		admin, err := fixtures.CreateTestAdmin(models.RoleModerator)
		require.NoError(t, err)

		t.Run("ByUserID", func(t *testing.T) {
			found, err := repo.ByUserID(ctx, admin.UserID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, admin.ID, found.ID)
			assert.Equal(t, models.RoleModerator, found.Role)
		})

		t.Run("ByUserIDMissing", func(t *testing.T) {
			found, err := repo.ByUserID(ctx, "auth0|000000000")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("PermissionCountsAndGrants", func(t *testing.T) {
			count, err := repo.CountPermissions(ctx, admin.ID)
			require.NoError(t, err)
			assert.Zero(t, count)

			_, err = fixtures.GrantTestPermission(admin.ID, "reports.manage")
			require.NoError(t, err)
			_, err = fixtures.GrantTestPermission(admin.ID, "homepage.manage")
			require.NoError(t, err)

			count, err = repo.CountPermissions(ctx, admin.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)

			granted, err := repo.HasPermission(ctx, admin.ID, "reports.manage")
			require.NoError(t, err)
			assert.True(t, granted)

			granted, err = repo.HasPermission(ctx, admin.ID, "casinos.manage")
			require.NoError(t, err)
			assert.False(t, granted)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCasinoRepositoryIntegration(t *testing.T) {
	requireTestDB(t)

	err := testingutil.TestWithDB(func(db *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(db)
		repo := repository.NewCasinoRepository(db.DB)

		royal, err := fixtures.CreateTestCasino("Royal Flush")
		require.NoError(t, err)
		_, err = fixtures.CreateTestCasino("Lucky Spin")
		require.NoError(t, err)

		t.Run("SearchByPattern", func(t *testing.T) {
			pattern := "%" + utils.EscapeLike("royal") + "%"
			results, err := repo.Search(ctx, models.CasinoFilter{SearchPattern: &pattern}, "rating DESC", 12, 0)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, "Royal Flush", results[0].Name)
		})

		t.Run("SearchPatternUsedVerbatim", func(t *testing.T) {
			// Without wildcards the pattern is an exact ILIKE match, so a
			// bare substring must not match anything.
			bare := "Spin"
			results, err := repo.Search(ctx, models.CasinoFilter{SearchPattern: &bare}, "rating DESC", 12, 0)
			require.NoError(t, err)
			assert.Empty(t, results)

			full := "Lucky Spin"
			results, err = repo.Search(ctx, models.CasinoFilter{SearchPattern: &full}, "rating DESC", 12, 0)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, "Lucky Spin", results[0].Name)
		})

		t.Run("SearchBySafetyIndex", func(t *testing.T) {
			results, err := repo.Search(ctx, models.CasinoFilter{SafetyIndex: []string{models.SafetyIndexHigh}}, "name ASC", 12, 0)
			require.NoError(t, err)
			assert.Len(t, results, 2)
		})

		t.Run("ByUUIDLoadsRelations", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, royal.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Len(t, found.Features, 2)
			assert.Len(t, found.Badges, 1)
			assert.Len(t, found.Links, 2)
		})

		t.Run("Count", func(t *testing.T) {
			count, err := repo.Count(ctx, models.CasinoFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})

		t.Run("DistinctLabels", func(t *testing.T) {
			features, err := repo.DistinctFeatureLabels(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"Live Dealers", "Fast Withdrawals"}, features)

			badges, err := repo.DistinctBadgeLabels(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Verified"}, badges)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestSecurityAlertRepositoryIntegration(t *testing.T) {
	requireTestDB(t)

	err := testingutil.TestWithDB(func(db *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(db)
		repo := repository.NewSecurityAlertRepository(db.DB)

		alert, err := fixtures.CreateTestAlert(models.AlertSeverityHigh, false)
		require.NoError(t, err)
		_, err = fixtures.CreateTestAlert(models.AlertSeverityCritical, false)
		require.NoError(t, err)
		_, err = fixtures.CreateTestAlert(models.AlertSeverityLow, true)
		require.NoError(t, err)

		t.Run("ListUnresolvedOnly", func(t *testing.T) {
			alerts, err := repo.List(ctx, true, 50, 0)
			require.NoError(t, err)
			assert.Len(t, alerts, 2)
		})

		t.Run("CountUnresolvedBySeverity", func(t *testing.T) {
			buckets, err := repo.CountUnresolvedBySeverity(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), buckets[models.AlertSeverityHigh])
			assert.Equal(t, int64(1), buckets[models.AlertSeverityCritical])
			assert.Zero(t, buckets[models.AlertSeverityLow])
		})

		t.Run("ResolveKeepsFirstResolution", func(t *testing.T) {
			now := utils.UTCNow()
			require.NoError(t, repo.Resolve(ctx, alert.ID, 1, utils.ToPtr("confirmed benign"), now))

			// A second resolution of the same alert succeeds but changes nothing.
			require.NoError(t, repo.Resolve(ctx, alert.ID, 2, utils.ToPtr("duplicate review"), utils.UTCNow()))

			resolved, err := repo.ByID(ctx, alert.ID)
			require.NoError(t, err)
			require.NotNil(t, resolved)
			assert.True(t, utils.IsTrue(resolved.IsResolved))
			require.NotNil(t, resolved.ResolvedBy)
			assert.Equal(t, uint(1), *resolved.ResolvedBy)
			require.NotNil(t, resolved.ResolutionNotes)
			assert.Equal(t, "confirmed benign", *resolved.ResolutionNotes)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCasinoReportRepositoryIntegration(t *testing.T) {
	requireTestDB(t)

	err := testingutil.TestWithDB(func(db *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(db)
		repo := repository.NewCasinoReportRepository(db.DB)

		report, err := fixtures.CreateTestReport("Lucky Spin", models.ReportStatusUnlicensed)
		require.NoError(t, err)
		_, err = fixtures.CreateTestReport("Royal Flush", models.ReportStatusScamIndicated)
		require.NoError(t, err)

		t.Run("ByFilterStatus", func(t *testing.T) {
			status := models.ReportStatusUnlicensed
			reports, err := repo.ByFilter(ctx, models.CasinoReportFilter{Status: &status}, "created_at DESC", 20, 0)
			require.NoError(t, err)
			require.Len(t, reports, 1)
			assert.Equal(t, "Lucky Spin", reports[0].CasinoName)
		})

		t.Run("Update", func(t *testing.T) {
			report.Status = models.ReportStatusManyUsersReported
			require.NoError(t, repo.Update(ctx, report))

			updated, err := repo.ByID(ctx, report.ID)
			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.Equal(t, models.ReportStatusManyUsersReported, updated.Status)
		})

		t.Run("DeleteByIDReportsExistence", func(t *testing.T) {
			existed, err := repo.DeleteByID(ctx, report.ID)
			require.NoError(t, err)
			assert.True(t, existed)

			existed, err = repo.DeleteByID(ctx, report.ID)
			require.NoError(t, err)
			assert.False(t, existed)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestHomepageRepositoryIntegration(t *testing.T) {
	requireTestDB(t)

	err := testingutil.TestWithDB(func(db *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(db)
		repo := repository.NewHomepageRepository(db.DB)

		active, err := fixtures.CreateTestBanner(1)
		require.NoError(t, err)

		inactive, err := fixtures.CreateTestBanner(2)
		require.NoError(t, err)
		inactive.IsActive = utils.ToPtr(false)
		require.NoError(t, repo.SaveBanner(ctx, inactive))

		t.Run("ListBannersActiveOnly", func(t *testing.T) {
			banners, err := repo.ListBanners(ctx, true)
			require.NoError(t, err)
			require.Len(t, banners, 1)
			assert.Equal(t, active.ID, banners[0].ID)
		})

		t.Run("UpsertContentBySection", func(t *testing.T) {
			require.NoError(t, repo.UpsertContent(ctx, &models.HomepageContent{Section: "about", Body: "first"}))
			require.NoError(t, repo.UpsertContent(ctx, &models.HomepageContent{Section: "about", Body: "second"}))

			contents, err := repo.ListContents(ctx)
			require.NoError(t, err)
			require.Len(t, contents, 1)
			assert.Equal(t, "second", contents[0].Body)
		})

		t.Run("DeleteBannerReportsExistence", func(t *testing.T) {
			existed, err := repo.DeleteBanner(ctx, active.ID)
			require.NoError(t, err)
			assert.True(t, existed)

			existed, err = repo.DeleteBanner(ctx, active.ID)
			require.NoError(t, err)
			assert.False(t, existed)
		})

		return nil
	})
	require.NoError(t, err)
}
