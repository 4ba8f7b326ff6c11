package github

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	validLogin    = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
	validRepoName = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ValidationError represents an argument that GitHub would reject
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for field '%s' (value: %s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "validation failed"
	case 1:
		return e[0].Error()
	}
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
}

// Add appends a validation error
func (e *ValidationErrors) Add(field, value, message string) {
	*e = append(*e, ValidationError{Field: field, Value: value, Message: message})
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ValidateLogin checks a user or organization login against GitHub's rules:
// alphanumerics and single hyphens, no leading or trailing hyphen, at most 39
// characters.
func ValidateLogin(login string) error {
	switch {
	case login == "":
		return &ValidationError{Field: "login", Message: "login cannot be empty"}
	case len(login) > 39:
		return &ValidationError{Field: "login", Value: login, Message: "login must be 39 characters or less"}
	case !validLogin.MatchString(login):
		return &ValidationError{Field: "login", Value: login, Message: "must contain only alphanumeric characters and single hyphens, cannot start or end with hyphen"}
	case strings.Contains(login, "--"):
		return &ValidationError{Field: "login", Value: login, Message: "cannot contain consecutive hyphens"}
	}
	return nil
}

// ValidateRepoName checks a repository name against GitHub rules
func ValidateRepoName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Field: "name", Message: "repository name is required"}
	case len(name) > 100:
		return &ValidationError{Field: "name", Value: name, Message: "repository name must be 100 characters or less"}
	case !validRepoName.MatchString(name):
		return &ValidationError{Field: "name", Value: name, Message: "repository name can only contain alphanumeric characters, periods, hyphens, and underscores"}
	case strings.HasPrefix(name, ".") || strings.HasSuffix(name, "."):
		return &ValidationError{Field: "name", Value: name, Message: "repository name cannot start or end with a period"}
	}
	return nil
}

// ValidateRepo checks the attributes of a repository about to be created.
func ValidateRepo(r *Repo) error {
	var errs ValidationErrors
	if r == nil {
		errs.Add("repository", "", "repository is required")
		return errs
	}

	if err := ValidateRepoName(r.Name.Value()); err != nil {
		errs = append(errs, *err.(*ValidationError))
	}
	if len(r.Description.Value()) > 350 {
		errs.Add("description", "", "repository description must be 350 characters or less")
	}
	if branch := r.DefaultBranch.Value(); r.DefaultBranch.IsSet() && strings.TrimSpace(branch) == "" {
		errs.Add("default_branch", branch, "default branch cannot be blank")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
