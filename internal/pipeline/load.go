package pipeline

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/store"
	"github.com/threeasure/fomodash/internal/survey"
)

// Load reads and prepares the survey file without consulting the cache.
func Load(path string, synonyms map[string]string) (*model.Dataset, error) {
	tbl, err := survey.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ds := Prepare(tbl, synonyms)
	ds.Source = path
	return ds, nil
}

// LoadWithCache returns the cached prepared dataset when the source file and
// the synonym map are both unchanged, and otherwise reads, prepares and
// re-caches. A nil cache behaves like Load. Cache write failures are not
// fatal; the freshly prepared dataset is still returned.
func LoadWithCache(path string, synonyms map[string]string, cache *store.Cache) (*model.Dataset, error) {
	if cache == nil {
		return Load(path, synonyms)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat data file: %w", err)
	}
	mtimeNs := info.ModTime().UnixNano()
	size := info.Size()
	synFP := SynonymsFingerprint(synonyms)

	if ds, ok, err := cache.LoadDataset(path, mtimeNs, size, synFP); err == nil && ok {
		return ds, nil
	}

	ds, err := Load(path, synonyms)
	if err != nil {
		return nil, err
	}
	if err := cache.SaveDataset(ds, mtimeNs, size, synFP); err != nil {
		return ds, nil
	}
	return ds, nil
}

// SynonymsFingerprint hashes a synonym map into a stable token. Prepared
// datasets are cached under it, so editing the [synonyms] config table
// invalidates cached labels even when the survey file itself is unchanged.
func SynonymsFingerprint(synonyms map[string]string) string {
	keys := make([]string, 0, len(synonyms))
	for k := range synonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(synonyms[k]))
		h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// CacheDir returns the directory holding the dataset cache, honoring
// XDG_CACHE_HOME.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "fomodash")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "fomodash")
	}
	return filepath.Join(home, ".cache", "fomodash")
}

// CachePath returns the dataset cache database path.
func CachePath() string {
	return filepath.Join(CacheDir(), "datasets.db")
}
