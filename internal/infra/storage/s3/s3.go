package s3

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rozennrd/dave-backend/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

type Storage struct {
	cl     *minio.Client
	cfg    Config
	logger *log.Logger
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, cfg: cfg, logger: logger}, nil
}

var _ domain.AvatarStorage = (*Storage)(nil)

// Ключ детерминированный: повторная загрузка перезаписывает старый аватар,
// мусор в бакете не копится.
func avatarKey(userID domain.UserID) string {
	return fmt.Sprintf("avatars/%s/avatar.jpg", userID)
}

// PutAvatar загружает аватар и возвращает его публичный URL.
func (s *Storage) PutAvatar(ctx context.Context, userID domain.UserID, r io.Reader, size int64, contentType string) (string, error) {
	key := avatarKey(userID)
	info, err := s.cl.PutObject(ctx, s.cfg.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Printf("PutAvatar %q failed: %v", key, err)
		return "", err
	}
	s.logger.Printf("PutAvatar %q ok size=%d", key, info.Size)

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key), nil
}

func (s *Storage) GetAvatar(ctx context.Context, userID domain.UserID) (io.ReadCloser, int64, string, error) {
	key := avatarKey(userID)
	info, err := s.cl.StatObject(ctx, s.cfg.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		s.logger.Printf("GetAvatar stat %q failed: %v", key, err)
		return nil, 0, "", err
	}
	obj, err := s.cl.GetObject(ctx, s.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Printf("GetAvatar %q failed: %v", key, err)
		return nil, 0, "", err
	}
	return obj, info.Size, info.ContentType, nil
}

func (s *Storage) DeleteAvatar(ctx context.Context, userID domain.UserID) error {
	key := avatarKey(userID)
	if err := s.cl.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Printf("DeleteAvatar %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("DeleteAvatar %q ok", key)
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.cfg.Bucket)
	}
	return nil
}
