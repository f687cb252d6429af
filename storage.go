package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

var (
	ErrNotExist   = errors.New("doesn't exist")
	ErrValidation = errors.New("validation failed")
)

// PoolsDir is the subdirectory under the data dir where pool files go
const PoolsDir = "pools"

const poolExt = ".json"

var badNameRegex = regexp.MustCompile(`[<>:"/\\|?\*]`)

func ValidatePoolName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: pool name cannot be blank", ErrValidation)
	}

	m := badNameRegex.FindAllString(name, -1)

	if len(m) > 0 {
		return fmt.Errorf("%w: pool name contains disallowed characters %s", ErrValidation, strings.Join(m, " "))
	}

	return nil
}

// Pool is a named list of drawable entries as stored on disk. Order is
// preserved; the drum decides how it is traversed.
type Pool struct {
	Name    string   `json:"name"`
	Entries []string `json:"entries"`
}

type Storage struct {
	config *Config
	fs     afero.Fs
}

func NewStorage(fs TombolaFS, config *Config) *Storage {
	subFS := afero.NewBasePathFs(fs, config.DataDir())

	return &Storage{
		config: config,
		fs:     subFS,
	}
}

func poolPath(name string) string {
	return filepath.Join(PoolsDir, name+poolExt)
}

func (s *Storage) ListPools() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, PoolsDir)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != poolExt {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), poolExt))
	}
	return names, nil
}

func (s *Storage) LoadPool(name string) (*Pool, error) {
	if err := ValidatePoolName(name); err != nil {
		return nil, err
	}

	file, err := s.fs.Open(poolPath(name))
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return nil, fmt.Errorf("pool %q %w", name, ErrNotExist)
		}
		return nil, err
	}
	defer file.Close()

	var pool Pool
	if err := json.NewDecoder(file).Decode(&pool); err != nil {
		return nil, fmt.Errorf("decode pool %q: %w", name, err)
	}
	if pool.Name == "" {
		pool.Name = name
	}
	return &pool, nil
}

func (s *Storage) SavePool(pool *Pool) error {
	if err := ValidatePoolName(pool.Name); err != nil {
		return err
	}
	if len(pool.Entries) == 0 {
		return fmt.Errorf("%w: pool %q has zero entries", ErrValidation, pool.Name)
	}

	if err := s.fs.MkdirAll(PoolsDir, 0777); err != nil {
		return err
	}

	file, err := s.fs.Create(poolPath(pool.Name))
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(pool)
}

func (s *Storage) DeletePool(name string) error {
	if err := ValidatePoolName(name); err != nil {
		return err
	}

	if err := s.fs.Remove(poolPath(name)); err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return fmt.Errorf("pool %q %w", name, ErrNotExist)
		}
		return err
	}
	return nil
}

func (s *Storage) PoolExists(name string) (bool, error) {
	if err := ValidatePoolName(name); err != nil {
		return false, err
	}

	_, err := s.fs.Stat(poolPath(name))
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
