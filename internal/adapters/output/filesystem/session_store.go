package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"garmin-gateway/internal/domain"
	"garmin-gateway/internal/ports/output"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure FileSessionStore implements SessionStore interface
var _ output.SessionStore = (*FileSessionStore)(nil)

const (
	dirMode   fs.FileMode = 0o700
	tokenMode fs.FileMode = 0o600
)

// FileSessionStore struct - Output adapter keeping the two token artifacts as
// files in one directory, in the layout the garth tooling reads and writes
type FileSessionStore struct {
	dir string
}

// NewFileSessionStore func - Creates a store rooted at dir
func NewFileSessionStore(dir string) *FileSessionStore {
	return &FileSessionStore{dir: dir}
}

// Dir returns the storage directory
func (s *FileSessionStore) Dir() string {
	return s.dir
}

// Ready creates the storage directory and its parents
func (s *FileSessionStore) Ready() error {
	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return fmt.Errorf("create token directory %s: %w", s.dir, err)
	}
	return nil
}

// HasSession reports whether both token files exist
func (s *FileSessionStore) HasSession() bool {
	for _, name := range []string{domain.OAuth1TokenFile, domain.OAuth2TokenFile} {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
			return false
		}
	}
	return true
}

// Load reads both token files
func (s *FileSessionStore) Load() (domain.TokenArtifacts, error) {
	oauth1, err := s.read(domain.OAuth1TokenFile)
	if err != nil {
		return domain.TokenArtifacts{}, err
	}
	oauth2, err := s.read(domain.OAuth2TokenFile)
	if err != nil {
		return domain.TokenArtifacts{}, err
	}
	return domain.TokenArtifacts{OAuth1: oauth1, OAuth2: oauth2}, nil
}

// Save writes both token files. Each file is replaced atomically and fsynced,
// so a crash leaves either the old or the new artifact on disk.
func (s *FileSessionStore) Save(tokens domain.TokenArtifacts) error {
	if !tokens.Complete() {
		return fmt.Errorf("%w: refusing to save an incomplete token pair", domain.ErrNoTokens)
	}
	if err := s.Ready(); err != nil {
		return err
	}
	if err := s.write(domain.OAuth1TokenFile, tokens.OAuth1); err != nil {
		return err
	}
	if err := s.write(domain.OAuth2TokenFile, tokens.OAuth2); err != nil {
		return err
	}
	logrus.Debugf("Stored Garmin tokens in %s", s.dir)
	return nil
}

// Clear removes both token files; missing files are ignored
func (s *FileSessionStore) Clear() error {
	for _, name := range []string{domain.OAuth1TokenFile, domain.OAuth2TokenFile} {
		err := os.Remove(filepath.Join(s.dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

func (s *FileSessionStore) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s missing in %s", domain.ErrNoTokens, name, s.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (s *FileSessionStore) write(name string, data []byte) error {
	path := filepath.Join(s.dir, name)

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(tokenMode))
	if err != nil {
		return fmt.Errorf("create pending token file %s: %w", name, err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logrus.Debugf("cleanup pending token file %s: %v", name, err)
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write token file %s: %w", name, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace token file %s: %w", name, err)
	}
	return nil
}
