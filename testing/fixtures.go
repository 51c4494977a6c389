// Package testing provides test utilities and database setup for testing the casino review platform
package testing

import (
	"fmt"
	"math/rand"

	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/google/uuid"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestAdmin creates a test admin user with the given role
func (tf *TestFixtures) CreateTestAdmin(role string) (*models.AdminUser, error) {
	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	admin := &models.AdminUser{
		UUID:     uuid.New(),
		UserID:   fmt.Sprintf("auth0|%s", randomDigits),
		Email:    fmt.Sprintf("admin.%s@example.com", randomDigits),
		Role:     role,
		IsActive: utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create test admin: %w", err)
	}

	return admin, nil
}

// GrantTestPermission assigns a named permission to an admin, creating the
// permission row if it does not exist yet.
func (tf *TestFixtures) GrantTestPermission(adminID uint, name string) (*models.AdminPermission, error) {
	var permission models.Permission
	err := tf.DB.DB.Where("name = ?", name).Last(&permission).Error
	if err != nil {
		permission = models.Permission{Name: name, Category: "test"}
		if err := tf.DB.DB.Create(&permission).Error; err != nil {
			return nil, fmt.Errorf("failed to create permission %s: %w", name, err)
		}
	}

	grant := &models.AdminPermission{
		AdminUserID:  adminID,
		PermissionID: permission.ID,
	}
	if err := tf.DB.DB.Create(grant).Error; err != nil {
		return nil, fmt.Errorf("failed to grant permission %s: %w", name, err)
	}

	return grant, nil
}

// CreateTestCasino creates a test casino with features, badges and links
func (tf *TestFixtures) CreateTestCasino(name string) (*models.Casino, error) {
	randomDigits := fmt.Sprintf("%06d", rand.Intn(900000)+100000)

	casino := &models.Casino{
		UUID:        uuid.New(),
		Name:        name,
		Slug:        fmt.Sprintf("%s-%s", name, randomDigits),
		Rating:      4.2,
		SafetyIndex: utils.ToPtr(models.SafetyIndexHigh),
		IsNew:       utils.ToPtr(false),
		IsHot:       utils.ToPtr(true),
		IsFeatured:  utils.ToPtr(false),
		PlayURL:     utils.ToPtr("https://play.example.com/" + randomDigits),
		Features: []models.CasinoFeature{
			{Label: "Live Dealers"},
			{Label: "Fast Withdrawals"},
		},
		Badges: []models.CasinoBadge{
			{Label: "Verified"},
		},
		Links: []models.CasinoLink{
			{LinkType: models.LinkTypeBonus, URL: "https://bonus.example.com/" + randomDigits},
			{LinkType: models.LinkTypeReview, URL: "https://review.example.com/" + randomDigits},
		},
	}

	if err := tf.DB.DB.Create(casino).Error; err != nil {
		return nil, fmt.Errorf("failed to create test casino: %w", err)
	}

	return casino, nil
}

// CreateTestAlert creates a test security alert
func (tf *TestFixtures) CreateTestAlert(severity string, resolved bool) (*models.SecurityAlert, error) {
	alert := &models.SecurityAlert{
		AlertType:  models.AlertTypeSuspiciousActivity,
		Severity:   severity,
		Message:    "Test alert",
		IsResolved: utils.ToPtr(resolved),
	}
	if resolved {
		alert.ResolvedAt = utils.UTCNowPtr()
	}

	if err := tf.DB.DB.Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create test alert: %w", err)
	}

	return alert, nil
}

// CreateTestReport creates a test casino report
func (tf *TestFixtures) CreateTestReport(casinoName, status string) (*models.CasinoReport, error) {
	report := &models.CasinoReport{
		CasinoName:    casinoName,
		ReporterEmail: utils.ToPtr("reporter@example.com"),
		Status:        status,
		Summary:       "Withdrawals held for weeks",
	}

	if err := tf.DB.DB.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create test report: %w", err)
	}

	return report, nil
}

// CreateTestBanner creates a test homepage banner
func (tf *TestFixtures) CreateTestBanner(position int) (*models.HomepageBanner, error) {
	banner := &models.HomepageBanner{
		Title:     fmt.Sprintf("Banner %d", position),
		ImageURL:  "https://cdn.example.com/banner.png",
		TargetURL: "https://example.com/promo",
		Position:  position,
		IsActive:  utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(banner).Error; err != nil {
		return nil, fmt.Errorf("failed to create test banner: %w", err)
	}

	return banner, nil
}
