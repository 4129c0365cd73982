package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mcq-platform/internal/cache"
	"mcq-platform/internal/domain"
	"mcq-platform/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultQuestionSetTTL = 10 * time.Minute

// cachedQuestion is the cache representation of a domain.Question.
type cachedQuestion struct {
	ID                 string          `json:"id"`
	TestPaperID        string          `json:"test_paper_id"`
	Text               string          `json:"text"`
	Options            []domain.Option `json:"options"`
	CorrectOptionIndex *int            `json:"correct_option_index"`
	MaxScore           float64         `json:"max_score"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// QuestionSetLoader reads the questions of a test paper through the cache.
// Concurrent misses for the same paper share one store query.
type QuestionSetLoader struct {
	repo  domain.QuestionRepository
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewQuestionSetLoader(repo domain.QuestionRepository, c domain.Cache, ttl time.Duration) *QuestionSetLoader {
	if ttl <= 0 {
		ttl = DefaultQuestionSetTTL
	}
	return &QuestionSetLoader{repo: repo, cache: c, ttl: ttl}
}

// Load returns the questions of testPaperID. Cache failures degrade to the store.
func (l *QuestionSetLoader) Load(ctx context.Context, testPaperID string) ([]*domain.Question, error) {
	key := cache.QuestionSetKey(testPaperID)

	if questions, ok := l.fromCache(ctx, key); ok {
		return questions, nil
	}

	// Coalesced callers share this load, so one caller's cancellation must not fail the rest.
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := l.group.Do(key, func() (interface{}, error) {
		questions, err := l.repo.ListQuestionsByTestPaper(loadCtx, testPaperID)
		if err != nil {
			return nil, err
		}
		l.store(loadCtx, key, questions)
		return questions, nil
	})
	if err != nil {
		return nil, storeError("failed to load questions", err)
	}
	if shared {
		logger.Get().Debug("Question set load coalesced", zap.String("testPaperID", testPaperID))
	}
	return v.([]*domain.Question), nil
}

// Invalidate drops the cached sets of the given papers.
func (l *QuestionSetLoader) Invalidate(ctx context.Context, testPaperIDs ...string) {
	if l.cache == nil || len(testPaperIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(testPaperIDs))
	for _, id := range testPaperIDs {
		keys = append(keys, cache.QuestionSetKey(id))
	}
	if err := l.cache.Delete(ctx, keys...); err != nil {
		logger.Get().Warn("Failed to invalidate question set cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (l *QuestionSetLoader) fromCache(ctx context.Context, key string) ([]*domain.Question, bool) {
	if l.cache == nil {
		return nil, false
	}
	raw, err := l.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Question set cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var cached []cachedQuestion
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		logger.Get().Warn("Discarding undecodable question set", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	questions := make([]*domain.Question, len(cached))
	for i, c := range cached {
		questions[i] = &domain.Question{
			ID:                 c.ID,
			TestPaperID:        c.TestPaperID,
			Text:               c.Text,
			Options:            c.Options,
			CorrectOptionIndex: c.CorrectOptionIndex,
			MaxScore:           c.MaxScore,
			CreatedAt:          c.CreatedAt,
			UpdatedAt:          c.UpdatedAt,
		}
	}
	return questions, true
}

func (l *QuestionSetLoader) store(ctx context.Context, key string, questions []*domain.Question) {
	if l.cache == nil {
		return
	}
	cached := make([]cachedQuestion, len(questions))
	for i, q := range questions {
		cached[i] = cachedQuestion{
			ID:                 q.ID,
			TestPaperID:        q.TestPaperID,
			Text:               q.Text,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
			MaxScore:           q.MaxScore,
			CreatedAt:          q.CreatedAt,
			UpdatedAt:          q.UpdatedAt,
		}
	}
	data, err := json.Marshal(cached)
	if err != nil {
		logger.Get().Warn("Failed to encode question set", zap.String("key", key), zap.Error(err))
		return
	}
	if err := l.cache.Set(ctx, key, string(data), l.ttl); err != nil {
		logger.Get().Warn("Question set cache write failed", zap.String("key", key), zap.Error(err))
	}
}
