package domain

import "strings"

// TaskID identifies a persisted task. Equality is by value.
type TaskID string

// NewTaskID validates and returns a TaskID.
func NewTaskID(raw string) (TaskID, error) {
	if strings.TrimSpace(raw) == "" {
		return "", Validationf("task id cannot be empty")
	}
	return TaskID(raw), nil
}

// ReviewID identifies a persisted weekly review.
type ReviewID string

// NewReviewID validates and returns a ReviewID.
func NewReviewID(raw string) (ReviewID, error) {
	if strings.TrimSpace(raw) == "" {
		return "", Validationf("review id cannot be empty")
	}
	return ReviewID(raw), nil
}

// ProjectID identifies a project grouping of tasks.
type ProjectID string

// NewProjectID validates and returns a ProjectID.
func NewProjectID(raw string) (ProjectID, error) {
	if strings.TrimSpace(raw) == "" {
		return "", Validationf("project id cannot be empty")
	}
	return ProjectID(raw), nil
}

// IdentityID identifies an identity statement.
type IdentityID string

// NewIdentityID validates and returns an IdentityID.
func NewIdentityID(raw string) (IdentityID, error) {
	if strings.TrimSpace(raw) == "" {
		return "", Validationf("identity id cannot be empty")
	}
	return IdentityID(raw), nil
}
