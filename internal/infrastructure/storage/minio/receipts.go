package minio

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

var (
	ErrInvalidKey     = errors.New(errors.ErrCodeValidation, "receipt key is required")
	ErrObjectNotFound = errors.New(errors.ErrCodeNotFound, "receipt not found")
)

const receiptContentType = "application/json"

// ReceiptStore keeps payment receipts as JSON objects.
type ReceiptStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type receiptStore struct {
	client *Client
	logger logging.Logger
}

// NewReceiptStore returns a ReceiptStore over client's bucket.
func NewReceiptStore(client *Client, log logging.Logger) ReceiptStore {
	return &receiptStore{client: client, logger: log}
}

// ReceiptKey is the object key for a booking's receipt.
func ReceiptKey(bookingID, transactionID string) string {
	return path.Join("receipts", bookingID, transactionID+".json")
}

func (s *receiptStore) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	info, err := s.client.api.PutObject(ctx, s.client.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: receiptContentType})
	if err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "receipt upload failed").WithDetail("key=" + key)
	}
	s.logger.Debug("Receipt stored",
		logging.String("key", key),
		logging.String("etag", info.ETag),
		logging.Int64("size", info.Size))
	return nil
}

func (s *receiptStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	if _, err := s.client.api.StatObject(ctx, s.client.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound.WithDetail("key=" + key)
		}
		return nil, errors.Wrap(err, errors.CodeStorageError, "receipt stat failed")
	}
	obj, err := s.client.api.GetObject(ctx, s.client.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorageError, "receipt download failed")
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorageError, "receipt read failed")
	}
	return data, nil
}

func (s *receiptStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	u, err := s.client.api.PresignedGetObject(ctx, s.client.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, errors.CodeStorageError, "failed to presign receipt")
	}
	return u.String(), nil
}

//Personal.AI order the ending
