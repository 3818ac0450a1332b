// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/studykit/securestore"
)

// SecretBackend implements securestore.Backend over BadgerDB, enforcing a
// per-entry size limit the chunking store splits against.
type SecretBackend struct {
	backend    *Backend
	entryLimit int
}

var _ securestore.Backend = (*SecretBackend)(nil)

// NewSecretBackend creates a secure-store backend. An entryLimit <= 0
// means unlimited entry size.
func NewSecretBackend(backend *Backend, entryLimit int) (*SecretBackend, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	return &SecretBackend{backend: backend, entryLimit: entryLimit}, nil
}

// Get returns the value stored at key.
func (s *SecretBackend) Get(key string) (string, error) {
	var value string
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSecretKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return securestore.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	}, false)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value at key, enforcing the entry limit.
func (s *SecretBackend) Set(key, value string) error {
	if s.entryLimit > 0 && len(value) > s.entryLimit {
		return fmt.Errorf("%w: %d bytes, limit %d", securestore.ErrValueTooLarge, len(value), s.entryLimit)
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeSecretKey(key), []byte(value)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Delete removes the entry at key. Deleting an absent key is not an error.
func (s *SecretBackend) Delete(key string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeSecretKey(key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
