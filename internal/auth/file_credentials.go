package auth

import (
	"bufio"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"quiz-trainer/internal/domain"
)

// FileCredentials reads "user:password" lines from a text file on every check,
// so edits take effect without a restart. A missing file means no users.
type FileCredentials struct {
	path string
}

func NewFileCredentials(path string) *FileCredentials {
	return &FileCredentials{path: path}
}

func (f *FileCredentials) Verify(_ context.Context, username, password string) error {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("open credentials: %w", err)
	}
	defer file.Close()

	creds, err := ParseCredentials(file)
	if err != nil {
		return err
	}
	want, ok := creds[username]
	if !ok || subtle.ConstantTimeCompare([]byte(want), []byte(password)) != 1 {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// ParseCredentials reads "user:password" lines; lines without a colon are skipped
// and the password may itself contain colons.
func ParseCredentials(r io.Reader) (map[string]string, error) {
	creds := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		user, pwd, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		creds[user] = pwd
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return creds, nil
}
