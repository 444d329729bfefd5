package utils

import (
	"strings"
	"testing"

	"main/dto"
)

func init() {
	InitValidator()
}

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.RegisterRequest
		wantErrs []string
	}{
		{
			name: "valid",
			req:  dto.RegisterRequest{Username: "alice", Email: "alice@example.com"},
		},
		{
			name:     "missing both fields collects both messages",
			req:      dto.RegisterRequest{},
			wantErrs: []string{"Username is required", "Email is required"},
		},
		{
			name:     "username too short",
			req:      dto.RegisterRequest{Username: "ab", Email: "alice@example.com"},
			wantErrs: []string{"Username must be at least 3 characters"},
		},
		{
			name:     "username not alphanumeric",
			req:      dto.RegisterRequest{Username: "a_lice", Email: "alice@example.com"},
			wantErrs: []string{"Username can only contain alphanumeric characters"},
		},
		{
			name:     "username too long",
			req:      dto.RegisterRequest{Username: strings.Repeat("a", 31), Email: "alice@example.com"},
			wantErrs: []string{"Username cannot exceed 30 characters"},
		},
		{
			name:     "invalid email",
			req:      dto.RegisterRequest{Username: "alice", Email: "not-an-email"},
			wantErrs: []string{"Please provide a valid email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(&tt.req)
			assertMessages(t, errs, tt.wantErrs)
		})
	}
}

func TestValidateCreateNoteRequest(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateNoteRequest
		wantErrs []string
	}{
		{
			name: "valid",
			req:  dto.CreateNoteRequest{Title: "Hello", Content: "World"},
		},
		{
			name:     "missing title and content",
			req:      dto.CreateNoteRequest{},
			wantErrs: []string{"Title is required", "Content is required"},
		},
		{
			name:     "title too long",
			req:      dto.CreateNoteRequest{Title: strings.Repeat("t", 201), Content: "x"},
			wantErrs: []string{"Title cannot exceed 200 characters"},
		},
		{
			name:     "content too long",
			req:      dto.CreateNoteRequest{Title: "t", Content: strings.Repeat("c", 50001)},
			wantErrs: []string{"Content cannot exceed 50000 characters"},
		},
		{
			name:     "language too long",
			req:      dto.CreateNoteRequest{Title: "t", Content: "c", Language: strings.Repeat("l", 51)},
			wantErrs: []string{"Language cannot exceed 50 characters"},
		},
		{
			name: "too many tags",
			req: dto.CreateNoteRequest{
				Title:   "t",
				Content: "c",
				Tags:    []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			},
			wantErrs: []string{"Maximum 10 tags allowed"},
		},
		{
			name: "tag too long",
			req: dto.CreateNoteRequest{
				Title:   "t",
				Content: "c",
				Tags:    []string{strings.Repeat("x", 51)},
			},
			wantErrs: []string{"Tags cannot exceed 50 characters each"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(&tt.req)
			assertMessages(t, errs, tt.wantErrs)
		})
	}
}

func assertMessages(t *testing.T, got, want []string) {
	t.Helper()

	if len(want) == 0 {
		if len(got) != 0 {
			t.Fatalf("expected no validation errors, got %v", got)
		}
		return
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d errors %v, got %d: %v", len(want), want, len(got), got)
	}
	for i, message := range want {
		if got[i] != message {
			t.Errorf("error %d: expected %q, got %q", i, message, got[i])
		}
	}
}
