// Package validation checks client input and reports field-level errors.
// Each validator returns the collected errors and whether the payload is
// acceptable; callers must stop before persistence when it is not.
package validation

import (
	"regexp"
	"time"

	"devconnector/internal/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register validates a registration payload.
func Register(name, email, password string) (map[string]string, bool) {
	errs := map[string]string{}

	if name == "" {
		errs["name"] = "Name field is required"
	} else if len(name) < 2 || len(name) > 30 {
		errs["name"] = "Name must be between 2 and 30 characters"
	}

	if email == "" {
		errs["email"] = "Email field is required"
	} else if !emailRegex.MatchString(email) || len(email) > 254 {
		errs["email"] = "Email is invalid"
	}

	if password == "" {
		errs["password"] = "Password field is required"
	} else if len(password) < 6 || len(password) > 30 {
		errs["password"] = "Password must be between 6 and 30 characters"
	}

	return errs, len(errs) == 0
}

// Login validates a login payload.
func Login(email, password string) (map[string]string, bool) {
	errs := map[string]string{}

	if email == "" {
		errs["email"] = "Email field is required"
	} else if !emailRegex.MatchString(email) {
		errs["email"] = "Email is invalid"
	}

	if password == "" {
		errs["password"] = "Password field is required"
	}

	return errs, len(errs) == 0
}

// Profile validates a profile patch. Handle, status, and skills are required
// on every call, matching the create-or-update contract.
func Profile(patch models.ProfilePatch) (map[string]string, bool) {
	errs := map[string]string{}

	if patch.Handle == nil || *patch.Handle == "" {
		errs["handle"] = "Profile handle is required"
	} else if len(*patch.Handle) < 2 || len(*patch.Handle) > 40 {
		errs["handle"] = "Handle needs to be between 2 and 40 characters"
	}

	if patch.Status == nil || *patch.Status == "" {
		errs["status"] = "Status field is required"
	}

	if len(patch.Skills) == 0 {
		errs["skills"] = "Skills field is required"
	}

	return errs, len(errs) == 0
}

// Experience validates a work history entry.
func Experience(title, company string, from time.Time) (map[string]string, bool) {
	errs := map[string]string{}

	if title == "" {
		errs["title"] = "Job title field is required"
	}
	if company == "" {
		errs["company"] = "Company field is required"
	}
	if from.IsZero() {
		errs["from"] = "From date field is required"
	}

	return errs, len(errs) == 0
}

// Education validates a schooling entry.
func Education(school, degree, fieldOfStudy string, from time.Time) (map[string]string, bool) {
	errs := map[string]string{}

	if school == "" {
		errs["school"] = "School field is required"
	}
	if degree == "" {
		errs["degree"] = "Degree field is required"
	}
	if fieldOfStudy == "" {
		errs["fieldofstudy"] = "Field of study field is required"
	}
	if from.IsZero() {
		errs["from"] = "From date field is required"
	}

	return errs, len(errs) == 0
}

// Post validates post and comment text.
func Post(text string) (map[string]string, bool) {
	errs := map[string]string{}

	if text == "" {
		errs["text"] = "Text field is required"
	} else if len(text) < 10 || len(text) > 300 {
		errs["text"] = "Post must be between 10 and 300 characters"
	}

	return errs, len(errs) == 0
}
