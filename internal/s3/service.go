package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/marketixlab/invoicegen/internal/config"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/samber/lo"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
)

var (
	validDocumentKinds = []DocumentKind{DocumentKindDocx, DocumentKindPdf}
)

// Service archives generated invoices in a single bucket under <key_prefix>/<invoice number>.<kind>
type Service interface {
	UploadDocument(ctx context.Context, document *Document) error
	GetPresignedUrl(ctx context.Context, id string, kind DocumentKind) (string, error)
	GetDocument(ctx context.Context, id string, kind DocumentKind) ([]byte, error)
	Exists(ctx context.Context, id string, kind DocumentKind) (bool, error)
}

// ObjectClient is the subset of *s3.Client the archive uses
type ObjectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Presigner is the subset of *s3.PresignClient the archive uses
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type s3ServiceImpl struct {
	client    ObjectClient
	presigner Presigner
	config    *config.S3Config
	logger    *logger.Logger
}

// NewService returns nil when archiving is disabled
func NewService(cfg *config.Configuration, log *logger.Logger) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := config.LoadAwsConfig(context.Background(), cfg.S3.Region)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	client := config.NewS3Client(awsCfg)
	return NewServiceWithClient(&cfg.S3, client, s3.NewPresignClient(client), log), nil
}

func NewServiceWithClient(cfg *config.S3Config, client ObjectClient, presigner Presigner, log *logger.Logger) Service {
	return &s3ServiceImpl{
		client:    client,
		presigner: presigner,
		config:    cfg,
		logger:    log,
	}
}

func (s *s3ServiceImpl) getObjectKey(id string, kind DocumentKind) (string, error) {
	if !lo.Contains(validDocumentKinds, kind) {
		return "", ierr.NewErrorf("invalid document kind: %s", kind).
			WithHintf("valid document kinds are: %v", validDocumentKinds).
			Mark(ierr.ErrSystem)
	}
	if s.config.KeyPrefix != "" {
		return fmt.Sprintf("%s/%s.%s", s.config.KeyPrefix, id, kind), nil
	}
	return fmt.Sprintf("%s.%s", id, kind), nil
}

// Exists implements Service.
func (s *s3ServiceImpl) Exists(ctx context.Context, id string, kind DocumentKind) (bool, error) {
	key, err := s.getObjectKey(id, kind)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		var nsk *types.NoSuchKey
		var nske *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nske) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithMessagef("checking document bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	return true, nil
}

// GetPresignedUrl implements Service.
func (s *s3ServiceImpl) GetPresignedUrl(ctx context.Context, id string, kind DocumentKind) (string, error) {
	key, err := s.getObjectKey(id, kind)
	if err != nil {
		return "", err
	}

	duration, err := time.ParseDuration(s.config.PresignExpiryDuration)
	if err != nil {
		duration = defaultPresignExpiryDuration
	}

	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to get presigned url").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	return result.URL, nil
}

// UploadDocument implements Service.
func (s *s3ServiceImpl) UploadDocument(ctx context.Context, document *Document) error {
	key, err := s.getObjectKey(document.ID, document.Kind)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(document.Data),
		ContentType: aws.String(document.Kind.ContentType()),
	})
	if err != nil {
		return ierr.WithError(err).WithHint("failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	s.logger.Debugw("archived invoice document", "bucket", s.config.Bucket, "key", key, "size", len(document.Data))
	return nil
}

// GetDocument implements Service.
func (s *s3ServiceImpl) GetDocument(ctx context.Context, id string, kind DocumentKind) ([]byte, error) {
	key, err := s.getObjectKey(id, kind)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ierr.WithError(err).
				WithHintf("Invoice document %s.%s was not found", id, kind).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("failed to get document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	defer result.Body.Close()

	return io.ReadAll(result.Body)
}
