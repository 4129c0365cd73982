package domain

import "context"

// Repository lookups return (nil, nil) when the record does not exist.

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetAccountByID(ctx context.Context, id string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	UpdateAccount(ctx context.Context, account *Account) error
}

type TestPaperRepository interface {
	CreateTestPaper(ctx context.Context, tp *TestPaper) error
	GetTestPaperByID(ctx context.Context, id string) (*TestPaper, error)
	ListTestPapers(ctx context.Context, activeOnly bool) ([]*TestPaper, error)
	UpdateTestPaper(ctx context.Context, tp *TestPaper) error
	DeleteTestPaper(ctx context.Context, id string) error
}

type QuestionRepository interface {
	CreateQuestion(ctx context.Context, q *Question) error
	GetQuestionByID(ctx context.Context, id string) (*Question, error)
	ListQuestions(ctx context.Context) ([]*Question, error)
	ListQuestionsByTestPaper(ctx context.Context, testPaperID string) ([]*Question, error)
	UpdateQuestion(ctx context.Context, q *Question) error
	DeleteQuestion(ctx context.Context, id string) error
	DeleteQuestionsByTestPaper(ctx context.Context, testPaperID string) error
}

type ResultRepository interface {
	CreateResult(ctx context.Context, r *Result) error
	GetResultByID(ctx context.Context, id string) (*Result, error)
	ListResultsByAccount(ctx context.Context, accountID string) ([]*Result, error)
	ListResultsByTestPaper(ctx context.Context, testPaperID string) ([]*Result, error)
	UpdateResult(ctx context.Context, r *Result) error
	DeleteResult(ctx context.Context, id string) error
	DeleteResultsByTestPaper(ctx context.Context, testPaperID string) error
}

// TransactionManager runs fn in a transaction carried by the context it receives.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
