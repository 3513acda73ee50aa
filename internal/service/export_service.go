package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/pkg/export"
	"github.com/noah-isme/creator-campaign-api/pkg/storage"
)

type exportCampaignReader interface {
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
}

type exportSubmissionReader interface {
	ListByCampaign(ctx context.Context, campaignID string) ([]models.Submission, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ExportFormat
	ExpiresAt    time.Time
}

// SubmissionExporter renders a campaign's submissions to CSV or PDF and
// stores the file behind a signed download token.
type SubmissionExporter struct {
	campaigns   exportCampaignReader
	submissions exportSubmissionReader
	storage     fileStorage
	csv         csvRenderer
	pdf         pdfRenderer
	signer      *storage.SignedURLSigner
	logger      *zap.Logger
	cfg         ExportConfig
}

// NewSubmissionExporter constructs a SubmissionExporter.
func NewSubmissionExporter(campaigns exportCampaignReader, submissions exportSubmissionReader, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *SubmissionExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &SubmissionExporter{
		campaigns:   campaigns,
		submissions: submissions,
		storage:     files,
		csv:         csv,
		pdf:         pdf,
		signer:      signer,
		logger:      logger,
		cfg:         cfg,
	}
}

// Generate builds the dataset for the job's campaign and stores the rendered
// export.
func (s *SubmissionExporter) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	dataset, title, err := s.buildDataset(ctx, job.Params.CampaignID)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Params.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", job.Params.Format)
	}
	if err != nil {
		return nil, err
	}

	filename := s.buildFilename(job)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/download/%s", prefix, token),
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *SubmissionExporter) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *SubmissionExporter) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *SubmissionExporter) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL).
func (s *SubmissionExporter) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

var exportHeaders = []string{
	"Name", "Participating", "Email", "Phone", "Messaging ID", "Contact Methods",
	"Instagram", "YouTube", "TikTok", "RED", "X", "Other Platforms",
	"Follower Counts", "Fee (JPY)", "Decline Reason", "Submitted At",
}

func (s *SubmissionExporter) buildDataset(ctx context.Context, campaignID string) (export.Dataset, string, error) {
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return export.Dataset{}, "", err
	}
	submissions, err := s.submissions.ListByCampaign(ctx, campaignID)
	if err != nil {
		return export.Dataset{}, "", err
	}

	rows := make([]map[string]string, 0, len(submissions))
	for _, sub := range submissions {
		rows = append(rows, map[string]string{
			"Name":            sub.DisplayName,
			"Participating":   formatBool(sub.CanParticipate),
			"Email":           sub.Email,
			"Phone":           sub.Phone,
			"Messaging ID":    derefString(sub.MessagingID),
			"Contact Methods": strings.Join(sub.ContactMethods, ", "),
			"Instagram":       derefString(sub.Instagram),
			"YouTube":         derefString(sub.YouTube),
			"TikTok":          derefString(sub.TikTok),
			"RED":             derefString(sub.Red),
			"X":               derefString(sub.X),
			"Other Platforms": formatOtherPlatforms(sub.OtherPlatforms),
			"Follower Counts": formatFollowerStats(sub.FollowerStats),
			"Fee (JPY)":       formatFee(sub.FeeAmount),
			"Decline Reason":  derefString(sub.DeclineReason),
			"Submitted At":    sub.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: rows}
	title := fmt.Sprintf("Submissions %s", campaign.Title)
	return dataset, title, nil
}

func (s *SubmissionExporter) buildFilename(job *models.ExportJob) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("submissions_%s_%s.%s", sanitizeFilename(job.Params.CampaignID), timestamp, job.Params.Format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatFee(fee *int64) string {
	if fee == nil {
		return ""
	}
	return fmt.Sprintf("%d", *fee)
}

func formatOtherPlatforms(list models.OtherPlatformList) string {
	parts := make([]string, 0, len(list))
	for _, entry := range list {
		parts = append(parts, fmt.Sprintf("%s: %s", entry.Platform, entry.URL))
	}
	return strings.Join(parts, "; ")
}

func formatFollowerStats(stats models.FollowerStatMap) string {
	if len(stats) == 0 {
		return ""
	}
	platforms := make([]string, 0, len(stats))
	for platform := range stats {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	parts := make([]string, 0, len(platforms))
	for _, platform := range platforms {
		parts = append(parts, fmt.Sprintf("%s: %d", platform, stats[platform].Count))
	}
	return strings.Join(parts, "; ")
}
