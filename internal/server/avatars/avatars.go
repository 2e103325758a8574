// Package avatars stores user avatar images in an S3-compatible backend
// and derives the default (gravatar) avatar URL for new accounts.
package avatars

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Store uploads an avatar image and returns its publicly reachable URL.
// The key is stable per user, so a re-upload overwrites the previous
// avatar in place.
type Store interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// FolderName derives a stable, non-reversible storage folder for an
// account: the first 12 hex chars of sha256(email).
func FolderName(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])[:12]
}

// Key returns the object key under which the account's avatar lives.
func Key(email string) string {
	return "avatars/" + FolderName(email)
}

// GravatarURL returns the gravatar image URL used as the default avatar
// for a freshly registered account.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=250&d=identicon", hex.EncodeToString(sum[:]))
}
