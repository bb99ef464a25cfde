package validate_test

import (
	"context"
	"testing"

	"github.com/hackercoop/coop/internal/validate"
)

func TestNonEmpty(t *testing.T) {
	if validate.NonEmpty("") || validate.NonEmpty("   ") || validate.NonEmpty("\n\t") {
		t.Fatalf("whitespace counted as content")
	}
	if !validate.NonEmpty("x") || !validate.NonEmpty("  x  ") {
		t.Fatalf("content rejected")
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"a@b.co", "jane.doe+tag@example.com"}
	invalid := []string{"", "not-an-email", "a@b", "a b@c.d", "@example.com"}

	for _, s := range valid {
		if !validate.Email(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if validate.Email(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestGithubURL(t *testing.T) {
	valid := []string{
		"https://github.com/jane/project",
		"github.com/jane/project",
		"https://gist.github.com/jane/abc",
	}
	invalid := []string{"", "https://gitlab.com/jane/project", "https://github.com.evil.io/x", "not a url"}

	for _, s := range valid {
		if !validate.GithubURL(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if validate.GithubURL(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestVercelURL(t *testing.T) {
	if !validate.VercelURL("https://my-homework.vercel.app") || !validate.VercelURL("my-homework.vercel.app") {
		t.Fatalf("vercel deployment rejected")
	}
	if validate.VercelURL("https://vercel.app") || validate.VercelURL("https://example.com") {
		t.Fatalf("non-deployment accepted")
	}
}

func validIntakeBody() string {
	return `{
		"email": "jane@example.com",
		"commitment": "10 hours",
		"education": "self taught",
		"employment": "barista",
		"can_use_git": true,
		"languages": "Python for 8 months",
		"location": "NYC",
		"timezone": "America/New_York",
		"project_proposal": "a recipe planner"
	}`
}

func TestCheckIntake_Valid(t *testing.T) {
	v, err := validate.CheckIntake(context.Background(), []byte(validIntakeBody()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatalf("unexpected violation: %+v", v)
	}
}

func TestCheckIntake_MissingRequired(t *testing.T) {
	body := `{"commitment": "10h", "education": "x", "employment": "y", "languages": "z", "location": "w", "project_proposal": "p"}`
	v, err := validate.CheckIntake(context.Background(), []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == nil {
		t.Fatalf("expected violation for missing email")
	}
	if v.Field != "email" {
		t.Fatalf("expected field email, got %q (%s)", v.Field, v.Message)
	}
}

func TestCheckIntake_WrongType(t *testing.T) {
	body := `{
		"email": "jane@example.com",
		"commitment": "10 hours",
		"education": "self taught",
		"employment": "barista",
		"can_use_git": "yes",
		"languages": "Python",
		"location": "NYC",
		"project_proposal": "a recipe planner"
	}`
	v, err := validate.CheckIntake(context.Background(), []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == nil || v.Field != "can_use_git" {
		t.Fatalf("expected violation on can_use_git, got %+v", v)
	}
}

func TestCheckIntake_UnknownField(t *testing.T) {
	body := `{
		"email": "jane@example.com",
		"commitment": "10 hours",
		"education": "self taught",
		"employment": "barista",
		"languages": "Python",
		"location": "NYC",
		"project_proposal": "a recipe planner",
		"admin": true
	}`
	v, err := validate.CheckIntake(context.Background(), []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == nil {
		t.Fatalf("expected violation for unknown field")
	}
}

func TestCheckIntake_NotJSON(t *testing.T) {
	if _, err := validate.CheckIntake(context.Background(), []byte("not json")); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}
