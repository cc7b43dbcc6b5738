package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "a@x.com",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Okafor",
		Password:  "Abcdef1!",
	}
}

func validationDetails(t *testing.T, err error) map[string]any {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	require.Equal(t, 400, de.HTTPStatus)
	require.Equal(t, "Validation failed", de.Message)
	return de.Details
}

func TestValidateAcceptsGoodRequest(t *testing.T) {
	require.NoError(t, Validate(validRegisterRequest()))

	req := validRegisterRequest()
	req.Role = "manager"
	req.Department = "Energy"
	require.NoError(t, Validate(req))
}

func TestPasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"all classes", "Abcdef1!", true},
		{"no uppercase", "abcdef1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no digit", "Abcdefg!", false},
		{"no special", "Abcdefg1", false},
		{"too short", "Ab1!", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			req.Password = tc.password
			err := Validate(req)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			details := validationDetails(t, err)
			require.Contains(t, details, "Password")
		})
	}
}

func TestUsernameMustBeAlphanumeric(t *testing.T) {
	req := validRegisterRequest()
	req.Username = "bad name!"
	details := validationDetails(t, Validate(req))
	require.Equal(t, "must contain only letters and digits", details["Username"])
}

func TestRoleAllowList(t *testing.T) {
	req := validRegisterRequest()
	req.Role = "superuser"
	details := validationDetails(t, Validate(req))
	require.Contains(t, details, "Role")
}

func TestMissingFieldsAreAllReported(t *testing.T) {
	details := validationDetails(t, Validate(RegisterRequest{}))
	for _, field := range []string{"Email", "Username", "FirstName", "LastName", "Password"} {
		require.Contains(t, details, field)
	}
}
