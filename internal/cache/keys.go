package cache

import "strings"

const (
	GlobalKeyPrefix = "mcq"

	ServiceAssessment = "assessment"
	ObjectQuestionSet = "questionset"
)

// GenerateCacheKey builds "<prefix>:<service>:<object>:<id>[:<p1_p2...>]".
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuestionSetKey is the key holding the cached question list of one test paper.
func QuestionSetKey(testPaperID string) string {
	return GenerateCacheKey(ServiceAssessment, ObjectQuestionSet, testPaperID)
}
