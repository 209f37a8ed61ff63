// Package securestore keeps small JSON values encrypted on disk, one file per
// key.
package securestore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/nacl/secretbox"
)

var ErrDecrypt = errors.New("securestore: value could not be decrypted")

const nonceSize = 24

type Store struct {
	dir string
	key [32]byte
}

// Open uses dir for storage, creating it with mode 0700. The secretbox key is
// derived from secret with SHA-256.
func Open(dir, secret string) (*Store, error) {
	if secret == "" {
		return nil, errors.New("securestore: empty secret")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("securestore: create %s: %w", dir, err)
	}
	return &Store{dir: dir, key: sha256.Sum256([]byte(secret))}, nil
}

func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:8])+".box")
}

// Get decodes the value stored under key into out. found is false when
// nothing is stored.
func (s *Store) Get(key string, out any) (found bool, err error) {
	sealed, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(sealed) < nonceSize {
		return false, ErrDecrypt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return false, ErrDecrypt
	}

	if err = json.Unmarshal(plain, out); err != nil {
		return false, fmt.Errorf("securestore: decode %s: %w", key, err)
	}
	return true, nil
}

// Set replaces the value under key. The file is written to a temporary name
// and renamed so readers never see a partial value.
func (s *Store) Set(key string, value any) error {
	plain, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("securestore: encode %s: %w", key, err)
	}

	var nonce [nonceSize]byte
	if _, err = io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return err
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &s.key)

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err = tmp.Write(sealed); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// SessionKey holds the Session shared by pocketctl and the shell.
const SessionKey = "session"

type Session struct {
	Token string `json:"token"`
}
