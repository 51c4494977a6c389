package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/repository"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/xuri/excelize/v2"
)

// EmailSender delivers notification mail. Delivery is best-effort from the
// flows' point of view; a failed send never fails the triggering request.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// CasinoReportFlow manages the casino report lifecycle: public submission,
// admin review, and export.
type CasinoReportFlow interface {
	// Submit accepts a public report submission and acknowledges the
	// reporter by mail when an address was given.
	Submit(ctx context.Context, req *dto.CreateReportRequest, metadata *ClientMetadata) (*dto.ReportDTO, error)

	// Create records a report on behalf of an admin.
	Create(ctx context.Context, req *dto.CreateReportRequest, actor *AdminInfo, metadata *ClientMetadata) (*dto.ReportDTO, error)

	// List returns reports newest first.
	List(ctx context.Context, page, limit int, status string) (*dto.ListReportsResponse, error)

	// Update applies the given fields to an existing report.
	Update(ctx context.Context, id uint, req *dto.UpdateReportRequest, actor *AdminInfo, metadata *ClientMetadata) (*dto.ReportDTO, error)

	// Delete removes a report. Deleting an id that is already gone is a
	// success, reported via the alreadyDeleted flag.
	Delete(ctx context.Context, id uint, actor *AdminInfo, metadata *ClientMetadata) (alreadyDeleted bool, err error)

	// Export renders all reports into a spreadsheet.
	Export(ctx context.Context, actor *AdminInfo, metadata *ClientMetadata) ([]byte, error)
}

// CasinoReportFlowImpl implements CasinoReportFlow
type CasinoReportFlowImpl struct {
	reportRepo   repository.CasinoReportRepository
	casinoRepo   repository.CasinoRepository
	activityFlow ActivityFlow
	emailSender  EmailSender
}

// NewCasinoReportFlow creates a new casino report flow. activityFlow and
// emailSender may be nil.
func NewCasinoReportFlow(
	reportRepo repository.CasinoReportRepository,
	casinoRepo repository.CasinoRepository,
	activityFlow ActivityFlow,
	emailSender EmailSender,
) CasinoReportFlow {
	return &CasinoReportFlowImpl{
		reportRepo:   reportRepo,
		casinoRepo:   casinoRepo,
		activityFlow: activityFlow,
		emailSender:  emailSender,
	}
}

func (f *CasinoReportFlowImpl) buildReport(req *dto.CreateReportRequest) (*models.CasinoReport, error) {
	name := utils.Sanitize(req.CasinoName)
	if name == "" {
		return nil, NewBusinessError("REPORT_CASINO_REQUIRED", "Casino name is required", ErrReportCasinoRequired)
	}
	if !models.IsValidReportStatus(req.Status) {
		return nil, invalidStatusError(req.Status)
	}

	report := &models.CasinoReport{
		CasinoID:   req.CasinoID,
		CasinoName: name,
		Status:     req.Status,
		Summary:    utils.Sanitize(req.Summary),
		CreatedAt:  utils.UTCNow(),
		UpdatedAt:  utils.UTCNow(),
	}
	if email := utils.Sanitize(req.ReporterEmail); email != "" {
		report.ReporterEmail = &email
	}
	if details := utils.Sanitize(req.Details); details != "" {
		report.Details = &details
	}
	return report, nil
}

func invalidStatusError(status string) error {
	return NewBusinessError(
		"INVALID_REPORT_STATUS",
		fmt.Sprintf("Status %q is not accepted, expected one of: %v", status, models.ValidReportStatuses),
		ErrInvalidReportStatus,
	)
}

// verifyCasinoLink drops a dangling casino reference instead of failing the
// submission; the report stays useful through its free-text casino name.
func (f *CasinoReportFlowImpl) verifyCasinoLink(ctx context.Context, report *models.CasinoReport) {
	if report.CasinoID == nil || f.casinoRepo == nil {
		return
	}
	casino, err := f.casinoRepo.ByID(ctx, *report.CasinoID)
	if err != nil {
		log.Printf("casino link check failed for report on %s: %v", report.CasinoName, err)
		return
	}
	if casino == nil {
		report.CasinoID = nil
	}
}

// Submit accepts a public report submission.
func (f *CasinoReportFlowImpl) Submit(ctx context.Context, req *dto.CreateReportRequest, metadata *ClientMetadata) (*dto.ReportDTO, error) {
	report, err := f.buildReport(req)
	if err != nil {
		return nil, err
	}
	f.verifyCasinoLink(ctx, report)

	if err := f.reportRepo.Save(ctx, report); err != nil {
		return nil, NewBusinessError("REPORT_CREATE_FAILED", "Failed to save report", ErrStorageUnavailable)
	}

	if f.emailSender != nil && report.ReporterEmail != nil {
		subject := fmt.Sprintf("We received your report about %s", report.CasinoName)
		body := fmt.Sprintf("Thank you for your report about %s. Our review team will look into it.", report.CasinoName)
		if err := f.emailSender.Send(ctx, *report.ReporterEmail, subject, body); err != nil {
			log.Printf("report acknowledgement mail failed for report %d: %v", report.ID, err)
		}
	}

	out := toReportDTO(report)
	return &out, nil
}

// Create records a report on behalf of an admin.
func (f *CasinoReportFlowImpl) Create(ctx context.Context, req *dto.CreateReportRequest, actor *AdminInfo, metadata *ClientMetadata) (*dto.ReportDTO, error) {
	report, err := f.buildReport(req)
	if err != nil {
		return nil, err
	}
	if actor != nil && actor.IsAdmin {
		report.CreatedBy = utils.ToPtr(actor.AdminUserID)
	}
	f.verifyCasinoLink(ctx, report)

	if err := f.reportRepo.Save(ctx, report); err != nil {
		return nil, NewBusinessError("REPORT_CREATE_FAILED", "Failed to save report", ErrStorageUnavailable)
	}

	f.record(ctx, actor, models.ActionReportCreated, report.ID, map[string]any{
		"casino_name": report.CasinoName,
		"status":      report.Status,
	}, metadata)

	out := toReportDTO(report)
	return &out, nil
}

// List returns reports newest first.
func (f *CasinoReportFlowImpl) List(ctx context.Context, page, limit int, status string) (*dto.ListReportsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > utils.MaxPageSize {
		limit = utils.DefaultPageSize
	}

	filter := models.CasinoReportFilter{}
	if status != "" {
		if !models.IsValidReportStatus(status) {
			return nil, invalidStatusError(status)
		}
		filter.Status = &status
	}

	reports, err := f.reportRepo.ByFilter(ctx, filter, "created_at DESC", limit, (page-1)*limit)
	if err != nil {
		return nil, NewBusinessError("REPORT_LIST_FAILED", "Failed to list reports", ErrStorageUnavailable)
	}
	total, err := f.reportRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("REPORT_LIST_FAILED", "Failed to count reports", ErrStorageUnavailable)
	}

	resp := &dto.ListReportsResponse{
		Reports: make([]dto.ReportDTO, 0, len(reports)),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}
	for _, r := range reports {
		resp.Reports = append(resp.Reports, toReportDTO(r))
	}
	return resp, nil
}

// Update applies the given fields to an existing report.
func (f *CasinoReportFlowImpl) Update(ctx context.Context, id uint, req *dto.UpdateReportRequest, actor *AdminInfo, metadata *ClientMetadata) (*dto.ReportDTO, error) {
	report, err := f.reportRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("REPORT_LOOKUP_FAILED", "Failed to look up report", ErrStorageUnavailable)
	}
	if report == nil {
		return nil, NewBusinessError("REPORT_NOT_FOUND", "Report not found", ErrReportNotFound)
	}

	if req.Status != nil {
		if !models.IsValidReportStatus(*req.Status) {
			return nil, invalidStatusError(*req.Status)
		}
		report.Status = *req.Status
	}
	if req.CasinoID != nil {
		report.CasinoID = req.CasinoID
	}
	if req.CasinoName != nil {
		if name := utils.Sanitize(*req.CasinoName); name != "" {
			report.CasinoName = name
		}
	}
	if req.Summary != nil {
		report.Summary = utils.Sanitize(*req.Summary)
	}
	if req.Details != nil {
		details := utils.Sanitize(*req.Details)
		report.Details = &details
	}
	report.UpdatedAt = utils.UTCNow()

	if err := f.reportRepo.Update(ctx, report); err != nil {
		return nil, NewBusinessError("REPORT_UPDATE_FAILED", "Failed to update report", ErrStorageUnavailable)
	}

	f.record(ctx, actor, models.ActionReportUpdated, report.ID, map[string]any{
		"status": report.Status,
	}, metadata)

	out := toReportDTO(report)
	return &out, nil
}

// Delete removes a report, treating a missing row as already deleted.
func (f *CasinoReportFlowImpl) Delete(ctx context.Context, id uint, actor *AdminInfo, metadata *ClientMetadata) (bool, error) {
	existed, err := f.reportRepo.DeleteByID(ctx, id)
	if err != nil {
		return false, NewBusinessError("REPORT_DELETE_FAILED", "Failed to delete report", ErrStorageUnavailable)
	}

	if existed {
		f.record(ctx, actor, models.ActionReportDeleted, id, nil, metadata)
	}
	return !existed, nil
}

// Export renders all reports into an xlsx workbook.
func (f *CasinoReportFlowImpl) Export(ctx context.Context, actor *AdminInfo, metadata *ClientMetadata) ([]byte, error) {
	reports, err := f.reportRepo.ByFilter(ctx, models.CasinoReportFilter{}, "created_at DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("REPORT_EXPORT_FAILED", "Failed to load reports for export", ErrStorageUnavailable)
	}

	wb := excelize.NewFile()
	defer func() {
		if err := wb.Close(); err != nil {
			log.Printf("failed to close export workbook: %v", err)
		}
	}()

	const sheet = "Reports"
	index, err := wb.NewSheet(sheet)
	if err != nil {
		return nil, NewBusinessError("REPORT_EXPORT_FAILED", "Failed to build export workbook", err)
	}
	wb.SetActiveSheet(index)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		log.Printf("failed to drop default sheet: %v", err)
	}

	headers := []string{"ID", "Casino", "Status", "Summary", "Details", "Reporter Email", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, NewBusinessError("REPORT_EXPORT_FAILED", "Failed to build export workbook", err)
		}
	}

	for row, r := range reports {
		values := []any{
			r.ID,
			r.CasinoName,
			r.Status,
			r.Summary,
			derefString(r.Details),
			derefString(r.ReporterEmail),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return nil, NewBusinessError("REPORT_EXPORT_FAILED", "Failed to build export workbook", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, NewBusinessError("REPORT_EXPORT_FAILED", "Failed to render export workbook", err)
	}

	f.record(ctx, actor, models.ActionReportExported, 0, map[string]any{
		"report_count": len(reports),
	}, metadata)

	return buf.Bytes(), nil
}

func (f *CasinoReportFlowImpl) record(ctx context.Context, actor *AdminInfo, action string, reportID uint, details map[string]any, metadata *ClientMetadata) {
	if f.activityFlow == nil {
		return
	}
	entry := ActivityEntry{
		Action:       action,
		ResourceType: "casino_report",
		Details:      details,
		Severity:     models.SeverityInfo,
		Metadata:     metadata,
	}
	if reportID != 0 {
		entry.ResourceID = itoa(reportID)
	}
	if action == models.ActionReportDeleted {
		entry.Severity = models.SeverityWarning
	}
	f.activityFlow.Record(ctx, actor, entry)
}

func toReportDTO(r *models.CasinoReport) dto.ReportDTO {
	return dto.ReportDTO{
		ID:            r.ID,
		CasinoID:      r.CasinoID,
		CasinoName:    r.CasinoName,
		ReporterEmail: derefString(r.ReporterEmail),
		Status:        r.Status,
		Summary:       r.Summary,
		Details:       derefString(r.Details),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
