package domain

import (
	"context"
	"io"
)

// Хранилище аватаров (S3/MinIO). Ключ детерминированный — avatars/<uid>/avatar.jpg,
// повторная загрузка перезаписывает старый файл.
type AvatarStorage interface {
	// Возвращает публичный URL загруженного аватара.
	PutAvatar(ctx context.Context, userID UserID, r io.Reader, size int64, contentType string) (string, error)
	GetAvatar(ctx context.Context, userID UserID) (rc io.ReadCloser, contentLen int64, contentType string, err error)
	DeleteAvatar(ctx context.Context, userID UserID) error
	Ping(context.Context) error
}
