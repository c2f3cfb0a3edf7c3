package app

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/minio/highwayhash"
)

// companionHashKey is the fixed 32-byte key used for source file hashing, so
// a file always hashes the same across sessions.
var companionHashKey = []byte("datapreview companion hash key!!")

// CalculateFileHash calculates a HighwayHash of the file content. The hash
// keys preview cache entries, so a changed source invalidates its cached
// preview payload.
func CalculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash, err := highwayhash.New(companionHashKey)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}

	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
