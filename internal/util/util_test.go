package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	ConfirmPassword string   `json:"confirmPassword" validate:"eqfield=Password"`
	Tags            []string `json:"tags" validate:"max=2,dive,oneof=a b"`
}

func TestValidateStruct_FieldMessages(t *testing.T) {
	err := ValidateStruct(signupForm{
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "other",
		Tags:            []string{"a", "z"},
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Please enter a valid email address.", verr.Fields["email"])
	assert.Equal(t, "Password must be at least 8 characters.", verr.Fields["password"])
	assert.Equal(t, "Passwords don't match.", verr.Fields["confirmPassword"])
	assert.Contains(t, verr.Fields["tags[1]"], "must be one of: a, b")
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(signupForm{
		Email:           "ada@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	})
	assert.NoError(t, err)
}

func TestValidationError_Message(t *testing.T) {
	err := NewFieldError("careerGoal", "Please enter a career goal before suggesting skills.")
	assert.Equal(t, "invalid input: Please enter a career goal before suggesting skills.", err.Error())
	assert.Equal(t, "invalid input", (&ValidationError{}).Error())
}

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("owner-1", "ada@example.com", "learner", "sid-1", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.Owner)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "owner-1", claims.Subject)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("owner-1", "ada@example.com", "learner", "sid-1", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}
