package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"
	"quiz-trainer/internal/domain"
	"quiz-trainer/internal/parser"
)

// PoolCache keeps parsed question pools keyed by file content.
type PoolCache interface {
	Get(ctx context.Context, key string) ([]domain.Question, bool, error)
	Set(ctx context.Context, key string, questions []domain.Question) error
}

// ParseFunc turns an uploaded file into questions.
type ParseFunc func(filename string, content []byte) ([]domain.Question, error)

// Service parses uploads in-process, deduplicating concurrent parses of the
// same content and caching the result.
type Service struct {
	cache PoolCache
	parse ParseFunc
	sf    singleflight.Group
}

func NewService(cache PoolCache) *Service {
	return NewServiceWithParser(cache, parser.Parse)
}

// NewServiceWithParser is used by tests to observe parse calls.
func NewServiceWithParser(cache PoolCache, parse ParseFunc) *Service {
	return &Service{cache: cache, parse: parse}
}

// Upload implements app.Uploader.
func (s *Service) Upload(ctx context.Context, filename string, content []byte) ([]domain.Question, error) {
	if filename == "" || len(content) == 0 {
		return nil, &domain.UploadError{StatusCode: 400, Detail: "No file uploaded", Err: domain.ErrNoFile}
	}

	key := cacheKey(filename, content)
	if questions, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("pool cache get %s: %v", key, err)
	} else if ok {
		return questions, nil
	}

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		questions, err := s.parse(filename, content)
		if err != nil {
			return nil, classify(err)
		}
		if err := s.cache.Set(ctx, key, questions); err != nil {
			log.Printf("pool cache set %s: %v", key, err)
		}
		log.Printf("parsed %d questions from %s", len(questions), filename)
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// UnsupportedFormatDetail is the upload detail shown for unreadable extensions.
const UnsupportedFormatDetail = "Invalid file format. Only .docx, .pdf and .txt supported."

func classify(err error) error {
	if errors.Is(err, domain.ErrUnsupportedFormat) {
		return &domain.UploadError{StatusCode: 400, Detail: UnsupportedFormatDetail, Err: err}
	}
	return &domain.UploadError{StatusCode: 500, Detail: err.Error(), Err: err}
}

func cacheKey(filename string, content []byte) string {
	sum := sha256.Sum256(content)
	return strings.ToLower(filepath.Ext(filename)) + ":" + hex.EncodeToString(sum[:])
}
