package handler_test

import (
	"context"
	"io"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/middleware"
	"mcq-platform/internal/service"

	"github.com/gofiber/fiber/v2"
)

// --- Manual Mocks ---

type MockAccountService struct {
	RegisterFunc      func(ctx context.Context, in service.RegisterInput) (*domain.Account, error)
	RegisterAdminFunc func(ctx context.Context, in service.RegisterInput, secret string) (*domain.Account, error)
	CreateAccountFunc func(ctx context.Context, actor domain.Principal, in service.RegisterInput, role domain.Role) (*domain.Account, error)
	LoginFunc         func(ctx context.Context, email, password string) (*service.LoginResult, error)
	GetAccountFunc    func(ctx context.Context, actor domain.Principal, id string) (*domain.Account, error)
	UpdateAccountFunc func(ctx context.Context, actor domain.Principal, id string, upd domain.AccountUpdate) (*domain.Account, error)
}

func (m *MockAccountService) Register(ctx context.Context, in service.RegisterInput) (*domain.Account, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	panic("MockAccountService.RegisterFunc not implemented")
}
func (m *MockAccountService) RegisterAdmin(ctx context.Context, in service.RegisterInput, secret string) (*domain.Account, error) {
	if m.RegisterAdminFunc != nil {
		return m.RegisterAdminFunc(ctx, in, secret)
	}
	panic("MockAccountService.RegisterAdminFunc not implemented")
}
func (m *MockAccountService) CreateAccount(ctx context.Context, actor domain.Principal, in service.RegisterInput, role domain.Role) (*domain.Account, error) {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, actor, in, role)
	}
	panic("MockAccountService.CreateAccountFunc not implemented")
}
func (m *MockAccountService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	panic("MockAccountService.LoginFunc not implemented")
}
func (m *MockAccountService) GetAccount(ctx context.Context, actor domain.Principal, id string) (*domain.Account, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, actor, id)
	}
	panic("MockAccountService.GetAccountFunc not implemented")
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, actor domain.Principal, id string, upd domain.AccountUpdate) (*domain.Account, error) {
	if m.UpdateAccountFunc != nil {
		return m.UpdateAccountFunc(ctx, actor, id, upd)
	}
	panic("MockAccountService.UpdateAccountFunc not implemented")
}

type MockTestPaperService struct {
	CreateFunc func(ctx context.Context, actor domain.Principal, tp *domain.TestPaper) (*domain.TestPaper, error)
	GetFunc    func(ctx context.Context, id string) (*domain.TestPaper, error)
	ListFunc   func(ctx context.Context, activeOnly bool) ([]*domain.TestPaper, error)
	UpdateFunc func(ctx context.Context, actor domain.Principal, id string, upd domain.TestPaperUpdate) (*domain.TestPaper, error)
	DeleteFunc func(ctx context.Context, actor domain.Principal, id string) error
}

func (m *MockTestPaperService) Create(ctx context.Context, actor domain.Principal, tp *domain.TestPaper) (*domain.TestPaper, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, tp)
	}
	panic("MockTestPaperService.CreateFunc not implemented")
}
func (m *MockTestPaperService) Get(ctx context.Context, id string) (*domain.TestPaper, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockTestPaperService.GetFunc not implemented")
}
func (m *MockTestPaperService) List(ctx context.Context, activeOnly bool) ([]*domain.TestPaper, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	panic("MockTestPaperService.ListFunc not implemented")
}
func (m *MockTestPaperService) Update(ctx context.Context, actor domain.Principal, id string, upd domain.TestPaperUpdate) (*domain.TestPaper, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, upd)
	}
	panic("MockTestPaperService.UpdateFunc not implemented")
}
func (m *MockTestPaperService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	panic("MockTestPaperService.DeleteFunc not implemented")
}

type MockQuestionService struct {
	CreateFunc func(ctx context.Context, actor domain.Principal, in service.QuestionInput) (*domain.Question, error)
	GetFunc    func(ctx context.Context, id string) (*domain.Question, error)
	ListFunc   func(ctx context.Context, testPaperID string) ([]*domain.Question, error)
	UpdateFunc func(ctx context.Context, actor domain.Principal, id string, patch service.QuestionPatch) (*domain.Question, error)
	DeleteFunc func(ctx context.Context, actor domain.Principal, id string) error
}

func (m *MockQuestionService) Create(ctx context.Context, actor domain.Principal, in service.QuestionInput) (*domain.Question, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, in)
	}
	panic("MockQuestionService.CreateFunc not implemented")
}
func (m *MockQuestionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockQuestionService.GetFunc not implemented")
}
func (m *MockQuestionService) List(ctx context.Context, testPaperID string) ([]*domain.Question, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, testPaperID)
	}
	panic("MockQuestionService.ListFunc not implemented")
}
func (m *MockQuestionService) Update(ctx context.Context, actor domain.Principal, id string, patch service.QuestionPatch) (*domain.Question, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, patch)
	}
	panic("MockQuestionService.UpdateFunc not implemented")
}
func (m *MockQuestionService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	panic("MockQuestionService.DeleteFunc not implemented")
}

type MockSubmissionService struct {
	SubmitFunc func(ctx context.Context, actor domain.Principal, accountID, testPaperID string, payload []byte) (*service.Submission, error)
}

func (m *MockSubmissionService) Submit(ctx context.Context, actor domain.Principal, accountID, testPaperID string, payload []byte) (*service.Submission, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, actor, accountID, testPaperID, payload)
	}
	panic("MockSubmissionService.SubmitFunc not implemented")
}

type MockResultService struct {
	GetFunc             func(ctx context.Context, actor domain.Principal, id string) (*domain.Result, error)
	ListByAccountFunc   func(ctx context.Context, actor domain.Principal, accountID string) ([]*domain.Result, error)
	ListByTestPaperFunc func(ctx context.Context, actor domain.Principal, testPaperID string) ([]*domain.Result, error)
	CorrectFunc         func(ctx context.Context, actor domain.Principal, id string, corr domain.ResultCorrection) (*domain.Result, error)
	DeleteFunc          func(ctx context.Context, actor domain.Principal, id string) error
	SummaryFunc         func(ctx context.Context, actor domain.Principal, testPaperID string) (*domain.ResultSummary, error)
	ReportFunc          func(ctx context.Context, actor domain.Principal, testPaperID string, w io.Writer) error
}

func (m *MockResultService) Get(ctx context.Context, actor domain.Principal, id string) (*domain.Result, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, id)
	}
	panic("MockResultService.GetFunc not implemented")
}
func (m *MockResultService) ListByAccount(ctx context.Context, actor domain.Principal, accountID string) ([]*domain.Result, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, actor, accountID)
	}
	panic("MockResultService.ListByAccountFunc not implemented")
}
func (m *MockResultService) ListByTestPaper(ctx context.Context, actor domain.Principal, testPaperID string) ([]*domain.Result, error) {
	if m.ListByTestPaperFunc != nil {
		return m.ListByTestPaperFunc(ctx, actor, testPaperID)
	}
	panic("MockResultService.ListByTestPaperFunc not implemented")
}
func (m *MockResultService) Correct(ctx context.Context, actor domain.Principal, id string, corr domain.ResultCorrection) (*domain.Result, error) {
	if m.CorrectFunc != nil {
		return m.CorrectFunc(ctx, actor, id, corr)
	}
	panic("MockResultService.CorrectFunc not implemented")
}
func (m *MockResultService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	panic("MockResultService.DeleteFunc not implemented")
}
func (m *MockResultService) Summary(ctx context.Context, actor domain.Principal, testPaperID string) (*domain.ResultSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, actor, testPaperID)
	}
	panic("MockResultService.SummaryFunc not implemented")
}
func (m *MockResultService) Report(ctx context.Context, actor domain.Principal, testPaperID string, w io.Writer) error {
	if m.ReportFunc != nil {
		return m.ReportFunc(ctx, actor, testPaperID, w)
	}
	panic("MockResultService.ReportFunc not implemented")
}

var (
	adminPrincipal = domain.Principal{AccountID: "admin1", Email: "root@example.com", Role: domain.RoleAdministrator}
	alicePrincipal = domain.Principal{AccountID: "alice", Email: "alice@example.com", Role: domain.RoleStandard}
)

// setupApp returns an app whose requests are authenticated as p, or anonymous
// when p is the zero value.
func setupApp(p domain.Principal) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		if p.AccountID != "" {
			c.Locals(middleware.PrincipalKey, p)
		}
		return c.Next()
	})
	return app
}
