package service

import (
	"context"
	"time"

	"mcq-platform/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockAccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- MockTestPaperRepository ---
type MockTestPaperRepository struct {
	mock.Mock
}

func (m *MockTestPaperRepository) CreateTestPaper(ctx context.Context, tp *domain.TestPaper) error {
	args := m.Called(ctx, tp)
	return args.Error(0)
}

func (m *MockTestPaperRepository) GetTestPaperByID(ctx context.Context, id string) (*domain.TestPaper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestPaper), args.Error(1)
}

func (m *MockTestPaperRepository) ListTestPapers(ctx context.Context, activeOnly bool) ([]*domain.TestPaper, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TestPaper), args.Error(1)
}

func (m *MockTestPaperRepository) UpdateTestPaper(ctx context.Context, tp *domain.TestPaper) error {
	args := m.Called(ctx, tp)
	return args.Error(0)
}

func (m *MockTestPaperRepository) DeleteTestPaper(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CreateQuestion(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListQuestionsByTestPaper(ctx context.Context, testPaperID string) ([]*domain.Question, error) {
	args := m.Called(ctx, testPaperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) UpdateQuestion(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteQuestion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteQuestionsByTestPaper(ctx context.Context, testPaperID string) error {
	args := m.Called(ctx, testPaperID)
	return args.Error(0)
}

// --- MockResultRepository ---
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) CreateResult(ctx context.Context, r *domain.Result) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResultRepository) GetResultByID(ctx context.Context, id string) (*domain.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

func (m *MockResultRepository) ListResultsByAccount(ctx context.Context, accountID string) ([]*domain.Result, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Result), args.Error(1)
}

func (m *MockResultRepository) ListResultsByTestPaper(ctx context.Context, testPaperID string) ([]*domain.Result, error) {
	args := m.Called(ctx, testPaperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Result), args.Error(1)
}

func (m *MockResultRepository) UpdateResult(ctx context.Context, r *domain.Result) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResultRepository) DeleteResult(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResultRepository) DeleteResultsByTestPaper(ctx context.Context, testPaperID string) error {
	args := m.Called(ctx, testPaperID)
	return args.Error(0)
}

// --- MockTransactionManager ---
// Runs fn directly unless an error is configured.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockTokenIssuer ---
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(principal domain.Principal, ttl time.Duration) (string, error) {
	args := m.Called(principal, ttl)
	return args.String(0), args.Error(1)
}

// --- fakeHasher ---
// Stores "hashed:<plain>" so tests avoid bcrypt cost.
type fakeHasher struct {
	verifyCalls int
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Verify(plain, hash string) bool {
	h.verifyCalls++
	return hash != "" && hash == "hashed:"+plain
}

var (
	adminPrincipal = domain.Principal{AccountID: "admin1", Email: "admin@example.com", Role: domain.RoleAdministrator}
	alicePrincipal = domain.Principal{AccountID: "alice", Email: "alice@example.com", Role: domain.RoleStandard}
	bobPrincipal   = domain.Principal{AccountID: "bob", Email: "bob@example.com", Role: domain.RoleStandard}
)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

// noCache builds a loader that always reads the store.
func noCache(repo domain.QuestionRepository) *QuestionSetLoader {
	return NewQuestionSetLoader(repo, nil, time.Minute)
}
