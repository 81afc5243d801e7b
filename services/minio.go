package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// ObjectStore is the lesson media storage used by ContentService.
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	DeleteFile(ctx context.Context, objectName string) error
}

type MinIOService struct {
	appContext.DefaultService
	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
}

const MINIO_SVC = "minio_svc"

func (svc MinIOService) Id() string {
	return MINIO_SVC
}

func (svc *MinIOService) Configure(ctx *appContext.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	if svc.endpoint == "" {
		svc.endpoint = "localhost:9000"
	}

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}

	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	if svc.secretKey == "" {
		svc.secretKey = "password123"
	}

	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucketName = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucketName == "" {
		svc.bucketName = "english-lessons"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MinIOService) Start() error {
	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %w", err)
	}

	svc.client = client

	if err := svc.ensureBucket(context.Background()); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	log.WithField("endpoint", svc.endpoint).Info("MinIO service started")
	return nil
}

func (svc *MinIOService) ensureBucket(ctx context.Context) error {
	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		log.WithField("bucket", svc.bucketName).Info("Created MinIO bucket")
	}

	return nil
}

func (svc *MinIOService) UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	_, err := svc.client.PutObject(ctx, svc.bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to MinIO: %w", err)
	}
	return nil
}

func (svc *MinIOService) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := svc.client.PresignedGetObject(ctx, svc.bucketName, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return presignedURL.String(), nil
}

func (svc *MinIOService) DeleteFile(ctx context.Context, objectName string) error {
	err := svc.client.RemoveObject(ctx, svc.bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file from MinIO: %w", err)
	}

	return nil
}

func (svc *MinIOService) GetBucketName() string {
	return svc.bucketName
}
