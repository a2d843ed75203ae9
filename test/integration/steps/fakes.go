package steps

import (
	"context"
	"errors"
	"sync"

	"github.com/project-ledger/backend/internal/application/adapter"
)

// samplePNG is a 1x1 transparent PNG.
var samplePNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// memoryStorage stands in for Firebase Storage.
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (*adapter.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[path] = data
	return &adapter.StoredObject{
		Path: path,
		URL:  "https://storage.permata.test/" + path,
	}, nil
}

func (s *memoryStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, path)
	return nil
}

func (s *memoryStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *memoryStorage) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[string][]byte)
}

// scriptedAnalyzer answers every analysis with the configured response or error.
type scriptedAnalyzer struct {
	mu     sync.Mutex
	answer string
	err    error
}

func (a *scriptedAnalyzer) Analyze(ctx context.Context, request *adapter.ImageAnalysisRequest) (*adapter.ImageAnalysisResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.err != nil {
		return nil, a.err
	}
	if a.answer == "" {
		return nil, errors.New("no answer scripted for this scenario")
	}
	return &adapter.ImageAnalysisResult{RawResponse: a.answer}, nil
}

func (a *scriptedAnalyzer) IsAvailable() bool {
	return true
}

func (a *scriptedAnalyzer) script(answer string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.answer = answer
	a.err = err
}

func (a *scriptedAnalyzer) reset() {
	a.script("", nil)
}
