package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "assessment",
			objectType:  "questionset",
			identifier:  "tp1",
			expectedKey: "mcq:assessment:questionset:tp1",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "assessment",
			objectType:  "questionset",
			identifier:  "tp1",
			paramsKey:   []string{},
			expectedKey: "mcq:assessment:questionset:tp1",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "results",
			objectType:  "summary",
			identifier:  "tp9",
			paramsKey:   []string{"v2", "admin"},
			expectedKey: "mcq:results:summary:tp9:v2_admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestQuestionSetKey(t *testing.T) {
	assert.Equal(t, "mcq:assessment:questionset:01HZX", QuestionSetKey("01HZX"))
}
