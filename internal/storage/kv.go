// Package storage persists the planner's state as whole JSON blobs in a
// flat key-value store. Every write replaces the whole value; there are no
// partial updates and no migrations beyond clearing keys that fail to parse.
package storage

import (
	"errors"

	"github.com/peterbourgon/diskv/v3"
)

var ErrNotFound = errors.New("storage: not found")

// KV is the abstract persistence collaborator.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// DiskvKV stores each key as a file under a base directory.
type DiskvKV struct {
	d *diskv.Diskv
}

var _ KV = (*DiskvKV)(nil)

func NewDiskvKV(basePath string) *DiskvKV {
	return &DiskvKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return nil },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (s *DiskvKV) Get(key string) ([]byte, error) {
	if !s.d.Has(key) {
		return nil, ErrNotFound
	}
	return s.d.Read(key)
}

func (s *DiskvKV) Set(key string, value []byte) error {
	return s.d.Write(key, value)
}

func (s *DiskvKV) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

// MemKV is a map-backed KV for tests.
type MemKV struct {
	values map[string][]byte
}

var _ KV = (*MemKV)(nil)

func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string][]byte)}
}

func (s *MemKV) Get(key string) ([]byte, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *MemKV) Set(key string, value []byte) error {
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemKV) Delete(key string) error {
	delete(s.values, key)
	return nil
}
