package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/dto"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

const (
	maxNameLength     = 100
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

// Validator provides request validation functionality
type Validator struct {
	now func() time.Time
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// ValidateRegister checks the credentials of a new account.
func (v *Validator) ValidateRegister(req dto.RegisterRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		errors = append(errors, domain.NewMissingFieldError("email"))
	case utf8.RuneCountInString(email) < 2 || utf8.RuneCountInString(email) > maxNameLength:
		errors = append(errors, domain.NewOutOfRangeError("email", utf8.RuneCountInString(email), 2, maxNameLength))
	case !emailPattern.MatchString(email):
		errors = append(errors, domain.NewInvalidFormatError("email", email))
	}

	switch {
	case req.Password == "":
		errors = append(errors, domain.NewMissingFieldError("password"))
	case len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength:
		errors = append(errors, domain.NewOutOfRangeError("password", len(req.Password), minPasswordLength, maxPasswordLength))
	}

	if name := strings.TrimSpace(req.FullName); name != "" {
		if e, ok := checkName("full_name", name); !ok {
			errors = append(errors, e)
		}
	}
	return errors
}

// ValidateLogin only checks presence; wrong credentials are an authentication failure.
func (v *Validator) ValidateLogin(req dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	}
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}
	return errors
}

// ValidateRole parses an optional role. Empty means the default role.
func (v *Validator) ValidateRole(role string) (domain.Role, domain.ValidationErrors) {
	if strings.TrimSpace(role) == "" {
		return domain.RoleStandard, nil
	}
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return "", domain.ValidationErrors{domain.NewInvalidFormatError("role", role)}
	}
	return parsed, nil
}

// ValidateAccountUpdate converts a profile update, rejecting malformed fields.
func (v *Validator) ValidateAccountUpdate(req dto.UpdateAccountRequest) (domain.AccountUpdate, domain.ValidationErrors) {
	var (
		upd    domain.AccountUpdate
		errors domain.ValidationErrors
	)

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if e, ok := checkName("full_name", name); !ok {
			errors = append(errors, e)
		} else {
			upd.FullName = &name
		}
	}

	if req.PhoneNumber != nil {
		phone := strings.TrimSpace(*req.PhoneNumber)
		if !phonePattern.MatchString(phone) {
			errors = append(errors, domain.NewInvalidFormatError("phone_number", phone))
		} else {
			upd.PhoneNumber = &phone
		}
	}

	if req.DateOfBirth != nil {
		dob, err := time.Parse(dto.DateLayout, strings.TrimSpace(*req.DateOfBirth))
		switch {
		case err != nil:
			errors = append(errors, domain.NewInvalidFormatError("date_of_birth", *req.DateOfBirth))
		case dob.After(v.now()):
			errors = append(errors, domain.NewOutOfRangeError("date_of_birth", *req.DateOfBirth, "1900-01-01", "today"))
		default:
			upd.DateOfBirth = &dob
		}
	}

	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			errors = append(errors, domain.NewInvalidFormatError("role", *req.Role))
		} else {
			upd.Role = &role
		}
	}

	return upd, errors
}

// ValidateCreateTestPaper builds a test paper with defaults applied.
func (v *Validator) ValidateCreateTestPaper(req dto.CreateTestPaperRequest) (*domain.TestPaper, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	tp := &domain.TestPaper{
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: domain.DefaultDurationMinutes,
		IsActive:        true,
	}

	if e, ok := checkPaperName(tp.Name); !ok {
		errors = append(errors, e)
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			errors = append(errors, domain.NewOutOfRangeError("duration_minutes", *req.DurationMinutes, 1, "unbounded"))
		}
		tp.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		tp.IsActive = *req.IsActive
	}
	return tp, errors
}

func (v *Validator) ValidateUpdateTestPaper(req dto.UpdateTestPaperRequest) (domain.TestPaperUpdate, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	upd := domain.TestPaperUpdate{DurationMinutes: req.DurationMinutes, IsActive: req.IsActive}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if e, ok := checkPaperName(name); !ok {
			errors = append(errors, e)
		}
		upd.Name = &name
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		errors = append(errors, domain.NewOutOfRangeError("duration_minutes", *req.DurationMinutes, 1, "unbounded"))
	}
	return upd, errors
}

func (v *Validator) ValidateCreateQuestion(req dto.CreateQuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(req.TestPaperID) == "" {
		errors = append(errors, domain.NewMissingFieldError("test_paper_id"))
	}
	if strings.TrimSpace(req.QuestionText) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_text"))
	}
	if req.Options == nil {
		errors = append(errors, domain.NewMissingFieldError("options"))
	} else {
		errors = append(errors, checkOptions(req.Options)...)
	}
	errors = append(errors, checkMaxScore(req.MaxScore)...)
	return errors
}

func (v *Validator) ValidateUpdateQuestion(req dto.UpdateQuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if req.TestPaperID != nil && strings.TrimSpace(*req.TestPaperID) == "" {
		errors = append(errors, domain.NewMissingFieldError("test_paper_id"))
	}
	if req.QuestionText != nil && strings.TrimSpace(*req.QuestionText) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_text"))
	}
	if req.Options != nil {
		errors = append(errors, checkOptions(req.Options)...)
	}
	errors = append(errors, checkMaxScore(req.MaxScore)...)
	return errors
}

// ValidateSubmitResult checks the addressing fields. The answers themselves are
// never rejected; unusable answers score zero.
func (v *Validator) ValidateSubmitResult(req dto.SubmitResultRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(req.UserID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	}
	if strings.TrimSpace(req.TestPaperID) == "" {
		errors = append(errors, domain.NewMissingFieldError("test_paper_id"))
	}
	return errors
}

func (v *Validator) ValidateCorrectResult(req dto.CorrectResultRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if req.FinalScore == nil && len(req.UserAnswers) == 0 {
		errors = append(errors, domain.NewMissingFieldError("final_score"))
	}
	if req.FinalScore != nil && *req.FinalScore < 0 {
		errors = append(errors, domain.NewOutOfRangeError("final_score", *req.FinalScore, 0, "unbounded"))
	}
	return errors
}

func checkName(field, name string) (domain.ValidationError, bool) {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > maxNameLength {
		return domain.NewOutOfRangeError(field, n, 2, maxNameLength), false
	}
	return domain.ValidationError{}, true
}

func checkPaperName(name string) (domain.ValidationError, bool) {
	if name == "" {
		return domain.NewMissingFieldError("name"), false
	}
	if n := utf8.RuneCountInString(name); n > maxNameLength {
		return domain.NewOutOfRangeError("name", n, 1, maxNameLength), false
	}
	return domain.ValidationError{}, true
}

func checkOptions(options []dto.OptionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(options) < domain.MinOptions || len(options) > domain.MaxOptions {
		errors = append(errors, domain.NewOutOfRangeError("options", len(options), domain.MinOptions, domain.MaxOptions))
	}
	for _, o := range options {
		if strings.TrimSpace(o.Text) == "" {
			errors = append(errors, domain.NewMissingFieldError("options.text"))
			break
		}
	}
	return errors
}

func checkMaxScore(score *float64) domain.ValidationErrors {
	if score != nil && *score <= 0 {
		return domain.ValidationErrors{domain.NewOutOfRangeError("max_score", *score, 0, "unbounded")}
	}
	return nil
}
