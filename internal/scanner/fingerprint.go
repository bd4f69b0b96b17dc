package scanner

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// fingerprintHeaderSize is how much of the file participates in the
// fingerprint. Size plus leading bytes is enough to track moves and renames
// without hashing whole videos.
const fingerprintHeaderSize = 16 * 1024

// Fingerprint returns a content fingerprint for the file at path: an MD5
// over the decimal file size and the first 16 KiB.
func Fingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	header := make([]byte, fingerprintHeaderSize)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	hasher := md5.New()
	hasher.Write([]byte(strconv.FormatInt(info.Size(), 10)))
	hasher.Write(header[:n])
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
