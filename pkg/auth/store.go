package auth

import (
	"sync"

	"github.com/99designs/keyring"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	jsoniter "github.com/json-iterator/go"
)

// ServiceName identifies the keyring namespace
const ServiceName = "wca"

// DefaultProfile is used when no profile is given
const DefaultProfile = "default"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNoCredentials is returned when a profile has no stored credentials
var ErrNoCredentials = errors.New("no stored credentials")

// Store keeps credentials per profile in a keyring
type Store struct {
	l    *zap.Logger
	ring keyring.Keyring
	mu   sync.Mutex
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// OpenStore opens the os keyring
func OpenStore(l *zap.Logger) (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:   ServiceName,
		PassPrefix:    ServiceName,
		WinCredPrefix: ServiceName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open keyring")
	}
	return NewStore(l, ring), nil
}

func NewStore(l *zap.Logger, ring keyring.Keyring) *Store {
	return &Store{
		l:    l.Named("auth.store"),
		ring: ring,
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (s *Store) Save(profile string, c Credentials) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal credentials")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ring.Set(keyring.Item{
		Key:         itemKey(profile),
		Data:        data,
		Label:       "wca " + profileName(profile),
		Description: "Engage api credentials",
	}); err != nil {
		return errors.Wrapf(err, "failed to store credentials for profile %q", profileName(profile))
	}
	s.l.Debug("stored credentials", zap.String("profile", profileName(profile)))
	return nil
}

// Load returns ErrNoCredentials if nothing is stored for profile
func (s *Store) Load(profile string) (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.ring.Get(itemKey(profile))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, ErrNoCredentials
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to read credentials for profile %q", profileName(profile))
	}
	c := &Credentials{}
	if err := json.Unmarshal(item.Data, c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal credentials for profile %q", profileName(profile))
	}
	return c, nil
}

// Remove is idempotent
func (s *Store) Remove(profile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ring.Remove(itemKey(profile)); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return errors.Wrapf(err, "failed to remove credentials for profile %q", profileName(profile))
	}
	s.l.Debug("removed credentials", zap.String("profile", profileName(profile)))
	return nil
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func profileName(profile string) string {
	if profile == "" {
		return DefaultProfile
	}
	return profile
}

func itemKey(profile string) string {
	return "profile." + profileName(profile)
}
