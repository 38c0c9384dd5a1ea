package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/petits-moulins/api/internal/config"
	"github.com/petits-moulins/api/internal/constants"
)

func TestSendVerificationCodeDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := svc.SendVerificationCode("parent@example.com", "123456", "fr"); err != ErrEmailServiceDisabled {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestSendVerificationCodeNotConfigured(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := svc.SendVerificationCode("parent@example.com", "123456", "fr"); err != ErrEmailServiceNotConfigured {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
}

func TestSendVerificationCodeInvalidRecipient(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "garderie@example.com",
	})
	if err := svc.SendVerificationCode("pas-un-courriel", "123456", "fr"); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestBuildVerificationCodeContent(t *testing.T) {
	subject, body := buildVerificationCodeContent("482913", "fr")
	if !strings.Contains(subject, "code de vérification") {
		t.Fatalf("unexpected subject: %s", subject)
	}
	if !strings.Contains(body, "482913") {
		t.Fatalf("expected code in body, got %s", body)
	}

	subject, body = buildVerificationCodeContent("482913", "en-US")
	if !strings.Contains(subject, "verification code") {
		t.Fatalf("unexpected english subject: %s", subject)
	}
	if !strings.Contains(body, "482913") {
		t.Fatalf("expected code in english body, got %s", body)
	}
}

func TestBuildFormStatusContent(t *testing.T) {
	input := FormStatusEmailInput{
		FormID:     "FORM-1-abc",
		FormType:   "sortie",
		Status:     constants.FormStatusApproved,
		ParentName: "Isabelle Roy",
	}

	subject, body := buildFormStatusContent(input, "fr")
	if !strings.Contains(subject, "approuvé") {
		t.Fatalf("unexpected subject: %s", subject)
	}
	if !strings.Contains(body, "Isabelle Roy") || !strings.Contains(body, "FORM-1-abc") {
		t.Fatalf("unexpected body: %s", body)
	}

	input.ParentName = ""
	_, body = buildFormStatusContent(input, "fr")
	if !strings.Contains(body, "Cher parent") {
		t.Fatalf("expected fallback salutation, got %s", body)
	}

	subject, _ = buildFormStatusContent(input, "en")
	if !strings.Contains(subject, "approved") {
		t.Fatalf("unexpected english subject: %s", subject)
	}
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":      localeFR,
		"fr":    localeFR,
		"fr-CA": localeFR,
		"en":    localeEN,
		"en-US": localeEN,
		"EN":    localeEN,
		"de":    localeFR,
	}
	for input, expected := range cases {
		if got := normalizeLocale(input); got != expected {
			t.Fatalf("locale %q: expected %s, got %s", input, expected, got)
		}
	}
}

func TestBuildFromAddress(t *testing.T) {
	if got := buildFromAddress("garderie@example.com", ""); got != "garderie@example.com" {
		t.Fatalf("unexpected bare address: %s", got)
	}
	got := buildFromAddress("garderie@example.com", "Les Petits Moulins")
	if !strings.Contains(got, "garderie@example.com") {
		t.Fatalf("expected address in formatted from, got %s", got)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	cases := []struct {
		err      error
		expected bool
	}{
		{nil, false},
		{errors.New("dial tcp: connection refused"), false},
		{errors.New("550 5.1.1 recipient address rejected"), true},
		{errors.New("550 no such user here"), true},
		{errors.New("user unknown"), true},
		{errors.New("450 try again later"), false},
	}
	for _, tc := range cases {
		if got := isEmailRecipientRejected(tc.err); got != tc.expected {
			t.Fatalf("error %v: expected %v, got %v", tc.err, tc.expected, got)
		}
	}
}
