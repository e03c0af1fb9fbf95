package validation

import (
	"strings"
	"testing"
	"time"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		userName  string
		email     string
		password  string
		ok        bool
		badFields []string
	}{
		{"Valid", "Alice", "alice@example.com", "secret123", true, nil},
		{"Missing Everything", "", "", "", false, []string{"name", "email", "password"}},
		{"Name Too Short", "A", "alice@example.com", "secret123", false, []string{"name"}},
		{"Name Too Long", strings.Repeat("a", 31), "alice@example.com", "secret123", false, []string{"name"}},
		{"Bad Email", "Alice", "not-an-email", "secret123", false, []string{"email"}},
		{"Password Too Short", "Alice", "alice@example.com", "12345", false, []string{"password"}},
		{"Password Too Long", "Alice", "alice@example.com", strings.Repeat("p", 31), false, []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := Register(tt.userName, tt.email, tt.password)
			assert.Equal(t, tt.ok, ok)
			for _, f := range tt.badFields {
				assert.Contains(t, errs, f)
			}
			if tt.ok {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	errs, ok := Login("", "")
	assert.False(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	_, ok = Login("alice@example.com", "whatever")
	assert.True(t, ok)
}

func TestProfile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		patch     models.ProfilePatch
		ok        bool
		badFields []string
	}{
		{
			"Valid",
			models.ProfilePatch{Handle: strPtr("alice"), Status: strPtr("Developer"), Skills: []string{"Go"}},
			true, nil,
		},
		{
			"Missing Required",
			models.ProfilePatch{},
			false, []string{"handle", "status", "skills"},
		},
		{
			"Handle Too Short",
			models.ProfilePatch{Handle: strPtr("a"), Status: strPtr("Dev"), Skills: []string{"Go"}},
			false, []string{"handle"},
		},
		{
			"Handle Too Long",
			models.ProfilePatch{Handle: strPtr(strings.Repeat("h", 41)), Status: strPtr("Dev"), Skills: []string{"Go"}},
			false, []string{"handle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := Profile(tt.patch)
			assert.Equal(t, tt.ok, ok)
			for _, f := range tt.badFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestExperienceAndEducation(t *testing.T) {
	t.Parallel()
	now := time.Now()

	errs, ok := Experience("", "", time.Time{})
	assert.False(t, ok)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "company")
	assert.Contains(t, errs, "from")

	_, ok = Experience("Engineer", "Acme", now)
	assert.True(t, ok)

	errs, ok = Education("", "", "", time.Time{})
	assert.False(t, ok)
	assert.Contains(t, errs, "school")
	assert.Contains(t, errs, "degree")
	assert.Contains(t, errs, "fieldofstudy")
	assert.Contains(t, errs, "from")

	_, ok = Education("State U", "BSc", "CS", now)
	assert.True(t, ok)
}

func TestPost(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		ok   bool
	}{
		{"Valid", "hello world, this is a post", true},
		{"Empty", "", false},
		{"Too Short", "short", false},
		{"Exactly Min", strings.Repeat("x", 10), true},
		{"Exactly Max", strings.Repeat("x", 300), true},
		{"Too Long", strings.Repeat("x", 301), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Post(tt.text)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
