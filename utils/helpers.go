package utils

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// MaxAvatarBytes is the largest avatar upload accepted (5 MiB).
const MaxAvatarBytes = 5 << 20

// IsImageContentType reports whether the uploaded file claims to be an image.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// AvatarExt picks a file extension for the stored avatar, preferring the
// uploaded filename and falling back to the content type.
func AvatarExt(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		return ext
	}
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}

// AvatarKey builds the storage path for a user's avatar. The timestamp keeps
// keys unique so an old object is never half-overwritten by a failed upload.
func AvatarKey(userID uint, now time.Time, ext string) string {
	return fmt.Sprintf("avatars/%d/%d%s", userID, now.UnixNano(), ext)
}
