package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/notetrackhq/notetrack/pkg/config"
)

// AudioStore keeps uploaded meeting recordings in MinIO. The transcription
// step reads them back through presigned URLs so the bucket stays private.
type AudioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewAudioStore connects to MinIO and ensures the audio bucket exists
func NewAudioStore(cfg *config.Config) (*AudioStore, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	store := &AudioStore{
		client:    client,
		bucket:    cfg.Storage.BucketName,
		publicURL: cfg.Storage.PublicURL,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *AudioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UploadRecording stores an audio file under the meeting's ID and returns
// the object name.
func (s *AudioStore) UploadRecording(ctx context.Context, meetingID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("recordings/%s/%s", meetingID, uuid.New())

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recording: %w", err)
	}
	return objectName, nil
}

// RecordingURL returns a URL the transcription service can fetch the
// recording from. With a public base URL configured that is used directly;
// otherwise a presigned URL valid for the given duration is issued.
func (s *AudioStore) RecordingURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign recording url: %w", err)
	}
	return presigned.String(), nil
}

// DeleteRecording removes a stored recording
func (s *AudioStore) DeleteRecording(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
