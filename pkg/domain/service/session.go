package service

import (
	"encoding/json"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/MrAlob/project-exam-1/pkg/common/domain"
	"github.com/MrAlob/project-exam-1/pkg/domain/model"
	"github.com/MrAlob/project-exam-1/pkg/storage"
)

var ErrMissingToken = errors.New("an access token is required to sign in")

// SessionService persists the bearer token and profile of the signed-in
// user. Reads fail soft; a session that cannot be decoded reads as signed
// out.
type SessionService interface {
	SignIn(token string, profile model.Profile) error
	SignOut()
	Token() (string, bool)
	Profile() *model.Profile
}

func NewSessionService(store storage.Store, tokenKey, profileKey string, dispatcher domain.EventDispatcher) SessionService {
	return &sessionService{
		store:      store,
		tokenKey:   tokenKey,
		profileKey: profileKey,
		dispatcher: dispatcher,
	}
}

type sessionService struct {
	store      storage.Store
	tokenKey   string
	profileKey string
	dispatcher domain.EventDispatcher
}

func (s *sessionService) SignIn(token string, profile model.Profile) error {
	if token == "" {
		return ErrMissingToken
	}

	if err := s.store.Set(s.tokenKey, token); err != nil {
		return errors.Wrap(err, "persist token")
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return errors.Wrap(err, "encode profile")
	}
	if err := s.store.Set(s.profileKey, string(raw)); err != nil {
		return errors.Wrap(err, "persist profile")
	}

	_ = s.dispatcher.Dispatch(model.SignedIn{Email: profile.Email})
	return nil
}

// SignOut removes both session keys. Best effort.
func (s *sessionService) SignOut() {
	if err := s.store.Delete(s.tokenKey); err != nil {
		log.WithError(err).Error("Failed to remove the stored token")
	}
	if err := s.store.Delete(s.profileKey); err != nil {
		log.WithError(err).Error("Failed to remove the stored profile")
	}
	_ = s.dispatcher.Dispatch(model.SignedOut{})
}

func (s *sessionService) Token() (string, bool) {
	token, err := s.store.Get(s.tokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.WithError(err).Error("Failed to read the stored token")
		}
		return "", false
	}
	return token, token != ""
}

func (s *sessionService) Profile() *model.Profile {
	raw, err := s.store.Get(s.profileKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.WithError(err).Error("Failed to read the stored profile")
		}
		return nil
	}

	var profile model.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.WithError(err).Error("Failed to decode the stored profile")
		return nil
	}
	return &profile
}
