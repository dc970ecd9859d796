package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileCache keeps raw upstream responses on disk, one JSON file per word.
// An empty root directory disables caching.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (cache *FileCache) enabled() bool {
	return cache.rootDir != ""
}

func (cache *FileCache) filePath(word string) string {
	return filepath.Join(cache.rootDir, strings.ReplaceAll(word, string(filepath.Separator), "_")+".json")
}

// cache returns the cached contents for word, or calls fetch and stores its result.
func (cache *FileCache) cache(word string, fetch func() ([]byte, error)) ([]byte, error) {
	if !cache.enabled() {
		return fetch()
	}

	localFilePath := cache.filePath(word)
	if contents, err := os.ReadFile(localFilePath); err == nil {
		return contents, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", localFilePath, err)
	}

	contents, err := fetch()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}
	if err := os.WriteFile(localFilePath, contents, 0644); err != nil {
		return contents, fmt.Errorf("os.WriteFile(%s) > %w", localFilePath, err)
	}
	return contents, nil
}
