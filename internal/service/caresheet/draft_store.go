package caresheet

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fsfcare/care-api/internal/questionnaire"
	apperrors "github.com/fsfcare/care-api/pkg/errors"
)

// DraftStore holds in-progress questionnaire drafts. Drafts are ephemeral
// and expire if untouched, only a saved sheet is durable.
type DraftStore struct {
	cache *gocache.Cache
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{
		cache: gocache.New(ttl, ttl/2),
	}
}

func (s *DraftStore) Put(draft *questionnaire.Draft) {
	s.cache.SetDefault(draft.ID.String(), draft)
}

func (s *DraftStore) Get(id string) (*questionnaire.Draft, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, apperrors.NotFound("draft", nil)
	}
	return v.(*questionnaire.Draft), nil
}

// Touch resets the draft's expiration.
func (s *DraftStore) Touch(draft *questionnaire.Draft) {
	s.cache.SetDefault(draft.ID.String(), draft)
}

func (s *DraftStore) Delete(id string) {
	s.cache.Delete(id)
}
