package domain

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Role
		wantErr  bool
	}{
		{name: "admin", input: "ADMIN", expected: RoleAdmin},
		{name: "employee", input: "EMPLOYEE", expected: RoleEmployee},
		{name: "lowercase", input: "admin", expected: RoleAdmin},
		{name: "surrounding whitespace", input: " EMPLOYEE ", expected: RoleEmployee},
		{name: "unknown role", input: "SUPERUSER", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := ParseRole(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if role != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, role)
			}
		})
	}
}

func TestSession_Authenticated(t *testing.T) {
	tests := []struct {
		name     string
		session  *Session
		expected bool
	}{
		{name: "nil session", session: nil, expected: false},
		{name: "anonymous", session: Anonymous(), expected: false},
		{
			name:     "user without token",
			session:  &Session{User: &User{ID: "EMP042"}},
			expected: false,
		},
		{
			name:     "token without user",
			session:  &Session{Token: "tok_abc"},
			expected: false,
		},
		{
			name:     "user and token",
			session:  &Session{User: &User{ID: "EMP042"}, Token: "tok_abc"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Authenticated(); got != tt.expected {
				t.Errorf("expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestUser_Verified(t *testing.T) {
	var nilUser *User
	if nilUser.Verified() {
		t.Error("expected nil user to be unverified")
	}
	if (&User{VerificationStatus: VerificationPending}).Verified() {
		t.Error("expected pending user to be unverified")
	}
	if (&User{VerificationStatus: VerificationRejected}).Verified() {
		t.Error("expected rejected user to be unverified")
	}
	if !(&User{VerificationStatus: VerificationApproved}).Verified() {
		t.Error("expected approved user to be verified")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "upstream message surfaces verbatim",
			err:      &UpstreamError{Status: 400, Message: "Invalid employee ID or password"},
			expected: "Invalid employee ID or password",
		},
		{
			name:     "upstream error without message falls through",
			err:      &UpstreamError{Status: 500},
			expected: "Something went wrong",
		},
		{
			name:     "invalid credentials",
			err:      ErrInvalidCredentials,
			expected: "Invalid credentials",
		},
		{
			name:     "expired session",
			err:      ErrSessionInvalid,
			expected: "Session expired. Please login again.",
		},
		{
			name:     "decode failure stays generic",
			err:      ErrUpstreamDecode,
			expected: "Server error",
		},
		{
			name:     "transport failure stays generic",
			err:      ErrUpstreamUnavailable,
			expected: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
