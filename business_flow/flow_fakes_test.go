package businessflow

import (
	"context"
	"sync"
	"time"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/repository"
)

// The fakes embed the repository interfaces so only the methods a flow
// actually calls need an implementation; anything else panics loudly.

type fakeAdminUserRepo struct {
	repository.AdminUserRepository

	admins       map[string]*models.AdminUser
	lookupErr    error
	permCounts   map[uint]int64
	permCountErr error
	grants       map[uint]map[string]bool
	grantErr     error
}

func (r *fakeAdminUserRepo) ByUserID(ctx context.Context, userID string) (*models.AdminUser, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	return r.admins[userID], nil
}

func (r *fakeAdminUserRepo) CountPermissions(ctx context.Context, adminUserID uint) (int64, error) {
	if r.permCountErr != nil {
		return 0, r.permCountErr
	}
	return r.permCounts[adminUserID], nil
}

func (r *fakeAdminUserRepo) HasPermission(ctx context.Context, adminUserID uint, permissionName string) (bool, error) {
	if r.grantErr != nil {
		return false, r.grantErr
	}
	return r.grants[adminUserID][permissionName], nil
}

type fakeAlertRepo struct {
	repository.SecurityAlertRepository

	mu    sync.Mutex
	byID  map[uint]*models.SecurityAlert
	saved []*models.SecurityAlert

	listResult []*models.SecurityAlert
	listErr    error
	count      int64
	countErr   error
	byIDErr    error
	saveErr    error
	resolveErr error
	resolved   []uint

	buckets     map[string]int64
	bucketsErr  error
	critical    []*models.SecurityAlert
	criticalErr error
}

func (r *fakeAlertRepo) Save(ctx context.Context, alert *models.SecurityAlert) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, alert)
	return nil
}

func (r *fakeAlertRepo) savedAlerts() []*models.SecurityAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.SecurityAlert, len(r.saved))
	copy(out, r.saved)
	return out
}

func (r *fakeAlertRepo) ByID(ctx context.Context, id uint) (*models.SecurityAlert, error) {
	if r.byIDErr != nil {
		return nil, r.byIDErr
	}
	return r.byID[id], nil
}

func (r *fakeAlertRepo) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*models.SecurityAlert, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.listResult, nil
}

func (r *fakeAlertRepo) Count(ctx context.Context, filter models.SecurityAlertFilter) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.count, nil
}

func (r *fakeAlertRepo) CountUnresolvedBySeverity(ctx context.Context) (map[string]int64, error) {
	if r.bucketsErr != nil {
		return nil, r.bucketsErr
	}
	return r.buckets, nil
}

func (r *fakeAlertRepo) ListRecentCritical(ctx context.Context, limit int) ([]*models.SecurityAlert, error) {
	if r.criticalErr != nil {
		return nil, r.criticalErr
	}
	return r.critical, nil
}

func (r *fakeAlertRepo) Resolve(ctx context.Context, alertID uint, resolvedBy uint, notes *string, at time.Time) error {
	if r.resolveErr != nil {
		return r.resolveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = append(r.resolved, alertID)
	if alert, ok := r.byID[alertID]; ok {
		resolved := true
		alert.IsResolved = &resolved
		alert.ResolvedBy = &resolvedBy
		alert.ResolutionNotes = notes
		alert.ResolvedAt = &at
	}
	return nil
}

type fakeActivityRepo struct {
	repository.ActivityLogRepository

	mu      sync.Mutex
	saved   []*models.ActivityLog
	saveErr error

	listByAdminResult []*models.ActivityLog
	listByAdminErr    error

	countSince       int64
	lastCountSince   time.Time
	countActive      int64
	countErr         error
	countActiveErr   error
	topActionsResult []*repository.ActionCount
	topActionsErr    error
}

func (r *fakeActivityRepo) Save(ctx context.Context, entry *models.ActivityLog) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, entry)
	return nil
}

func (r *fakeActivityRepo) savedEntries() []*models.ActivityLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ActivityLog, len(r.saved))
	copy(out, r.saved)
	return out
}

func (r *fakeActivityRepo) ListByAdmin(ctx context.Context, adminUserID uint, limit, offset int) ([]*models.ActivityLog, error) {
	if r.listByAdminErr != nil {
		return nil, r.listByAdminErr
	}
	return r.listByAdminResult, nil
}

func (r *fakeActivityRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	r.lastCountSince = since
	r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.countSince, nil
}

func (r *fakeActivityRepo) CountActiveAdminsSince(ctx context.Context, since time.Time) (int64, error) {
	if r.countActiveErr != nil {
		return 0, r.countActiveErr
	}
	return r.countActive, nil
}

func (r *fakeActivityRepo) TopActionsSince(ctx context.Context, since time.Time, limit int) ([]*repository.ActionCount, error) {
	if r.topActionsErr != nil {
		return nil, r.topActionsErr
	}
	return r.topActionsResult, nil
}

type fakeCasinoRepo struct {
	repository.CasinoRepository

	searchResult []*models.Casino
	searchErr    error
	lastFilter   models.CasinoFilter
	lastOrderBy  string
	lastLimit    int
	lastOffset   int

	count    int64
	countErr error

	byUUIDResult *models.Casino
	byUUIDErr    error
	byIDResult   map[uint]*models.Casino
	byIDErr      error

	features    []string
	featuresErr error
	badges      []string
	badgesErr   error
}

func (r *fakeCasinoRepo) Search(ctx context.Context, filter models.CasinoFilter, orderBy string, limit, offset int) ([]*models.Casino, error) {
	r.lastFilter = filter
	r.lastOrderBy = orderBy
	r.lastLimit = limit
	r.lastOffset = offset
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.searchResult, nil
}

func (r *fakeCasinoRepo) Count(ctx context.Context, filter models.CasinoFilter) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.count, nil
}

func (r *fakeCasinoRepo) ByUUID(ctx context.Context, uuid string) (*models.Casino, error) {
	if r.byUUIDErr != nil {
		return nil, r.byUUIDErr
	}
	return r.byUUIDResult, nil
}

func (r *fakeCasinoRepo) ByID(ctx context.Context, id uint) (*models.Casino, error) {
	if r.byIDErr != nil {
		return nil, r.byIDErr
	}
	return r.byIDResult[id], nil
}

func (r *fakeCasinoRepo) DistinctFeatureLabels(ctx context.Context) ([]string, error) {
	if r.featuresErr != nil {
		return nil, r.featuresErr
	}
	return r.features, nil
}

func (r *fakeCasinoRepo) DistinctBadgeLabels(ctx context.Context) ([]string, error) {
	if r.badgesErr != nil {
		return nil, r.badgesErr
	}
	return r.badges, nil
}

type fakeReportRepo struct {
	repository.CasinoReportRepository

	mu      sync.Mutex
	saved   []*models.CasinoReport
	saveErr error
	nextID  uint

	byID    map[uint]*models.CasinoReport
	byIDErr error

	byFilterResult []*models.CasinoReport
	byFilterErr    error
	lastOrderBy    string
	lastLimit      int
	lastOffset     int

	count    int64
	countErr error

	updated   []*models.CasinoReport
	updateErr error

	deleteExisted bool
	deleteErr     error
	deletedIDs    []uint
}

func (r *fakeReportRepo) Save(ctx context.Context, report *models.CasinoReport) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	report.ID = r.nextID
	r.saved = append(r.saved, report)
	return nil
}

func (r *fakeReportRepo) ByID(ctx context.Context, id uint) (*models.CasinoReport, error) {
	if r.byIDErr != nil {
		return nil, r.byIDErr
	}
	return r.byID[id], nil
}

func (r *fakeReportRepo) ByFilter(ctx context.Context, filter models.CasinoReportFilter, orderBy string, limit, offset int) ([]*models.CasinoReport, error) {
	r.lastOrderBy = orderBy
	r.lastLimit = limit
	r.lastOffset = offset
	if r.byFilterErr != nil {
		return nil, r.byFilterErr
	}
	return r.byFilterResult, nil
}

func (r *fakeReportRepo) Count(ctx context.Context, filter models.CasinoReportFilter) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.count, nil
}

func (r *fakeReportRepo) Update(ctx context.Context, report *models.CasinoReport) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, report)
	return nil
}

func (r *fakeReportRepo) DeleteByID(ctx context.Context, id uint) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	r.deletedIDs = append(r.deletedIDs, id)
	return r.deleteExisted, nil
}

type fakeHomepageRepo struct {
	banners    []*models.HomepageBanner
	statistics []*models.HomepageStatistic
	features   []*models.HomepageFeature
	contents   []*models.HomepageContent
	listErr    error

	savedBanners    []*models.HomepageBanner
	savedStatistics []*models.HomepageStatistic
	savedFeatures   []*models.HomepageFeature
	savedContents   []*models.HomepageContent
	saveErr         error

	deleteExisted bool
	deleteErr     error
	deletedIDs    []uint
}

func (r *fakeHomepageRepo) ListBanners(ctx context.Context, activeOnly bool) ([]*models.HomepageBanner, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.banners, nil
}

func (r *fakeHomepageRepo) ListStatistics(ctx context.Context) ([]*models.HomepageStatistic, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.statistics, nil
}

func (r *fakeHomepageRepo) ListFeatures(ctx context.Context) ([]*models.HomepageFeature, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.features, nil
}

func (r *fakeHomepageRepo) ListContents(ctx context.Context) ([]*models.HomepageContent, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.contents, nil
}

func (r *fakeHomepageRepo) SaveBanner(ctx context.Context, banner *models.HomepageBanner) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.savedBanners = append(r.savedBanners, banner)
	return nil
}

func (r *fakeHomepageRepo) SaveStatistic(ctx context.Context, statistic *models.HomepageStatistic) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.savedStatistics = append(r.savedStatistics, statistic)
	return nil
}

func (r *fakeHomepageRepo) SaveFeature(ctx context.Context, feature *models.HomepageFeature) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.savedFeatures = append(r.savedFeatures, feature)
	return nil
}

func (r *fakeHomepageRepo) UpsertContent(ctx context.Context, content *models.HomepageContent) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.savedContents = append(r.savedContents, content)
	return nil
}

func (r *fakeHomepageRepo) DeleteBanner(ctx context.Context, id uint) (bool, error) {
	return r.delete(id)
}

func (r *fakeHomepageRepo) DeleteStatistic(ctx context.Context, id uint) (bool, error) {
	return r.delete(id)
}

func (r *fakeHomepageRepo) DeleteFeature(ctx context.Context, id uint) (bool, error) {
	return r.delete(id)
}

func (r *fakeHomepageRepo) DeleteContent(ctx context.Context, id uint) (bool, error) {
	return r.delete(id)
}

func (r *fakeHomepageRepo) delete(id uint) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	r.deletedIDs = append(r.deletedIDs, id)
	return r.deleteExisted, nil
}

// fakeActivityFlow records entries synchronously for assertions.
type fakeActivityFlow struct {
	mu      sync.Mutex
	entries []ActivityEntry
	actors  []*AdminInfo
}

func (f *fakeActivityFlow) Record(ctx context.Context, info *AdminInfo, entry ActivityEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	f.actors = append(f.actors, info)
}

func (f *fakeActivityFlow) ListByAdmin(ctx context.Context, adminUserID uint, limit, offset int) ([]*models.ActivityLog, error) {
	return nil, nil
}

func (f *fakeActivityFlow) Summary(ctx context.Context, windowDays int) (*dto.ActivitySummaryResponse, error) {
	return nil, nil
}

func (f *fakeActivityFlow) Close() {}

func (f *fakeActivityFlow) recorded() []ActivityEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ActivityEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
