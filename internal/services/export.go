package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"ride-tracker-backend/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const exportURLExpiry = 15 * time.Minute

// S3Config holds object storage settings for exports
type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// ObjectUploader stores export files
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectPresigner creates temporary download links
type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ActivityGetter looks up a single activity
type ActivityGetter interface {
	GetByID(ctx context.Context, id string) (*models.Activity, error)
}

// ExportResult represents the response with a pre-signed download URL
type ExportResult struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

// ExportService writes activity tracks to S3 as GPX files
type ExportService struct {
	activities ActivityGetter
	uploader   ObjectUploader
	presigner  ObjectPresigner
	bucket     string
}

// NewExportService creates an export service from explicit collaborators
func NewExportService(activities ActivityGetter, uploader ObjectUploader, presigner ObjectPresigner, bucket string) *ExportService {
	return &ExportService{
		activities: activities,
		uploader:   uploader,
		presigner:  presigner,
		bucket:     bucket,
	}
}

// loadAWSConfig is a seam for tests
var loadAWSConfig = config.LoadDefaultConfig

// NewS3ExportService builds the S3 client from cfg. Static credentials are
// used when both keys are set, the default chain otherwise.
func NewS3ExportService(ctx context.Context, activities ActivityGetter, cfg S3Config) (*ExportService, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewExportService(activities, client, s3.NewPresignClient(client), cfg.Bucket), nil
}

// Export uploads the activity as GPX and returns a download link. A nil
// service means storage is not configured.
func (s *ExportService) Export(ctx context.Context, activityID string) (*ExportResult, error) {
	if s == nil || s.bucket == "" {
		return nil, models.ErrExportUnavailable
	}

	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	doc, err := RenderGPX(activity)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("activities/%s.gpx", activity.ID)
	_, err = s.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(doc),
		ContentType: aws.String("application/gpx+xml"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	request, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = exportURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &ExportResult{
		URL:       request.URL,
		Key:       key,
		ExpiresIn: int(exportURLExpiry.Seconds()),
	}, nil
}
