package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/backoffice/internal/service/auth"
)

func TestIssueAndValidate(t *testing.T) {
	svc := auth.NewTokenService("secret", "backoffice", "backoffice-api", time.Hour)

	token, err := svc.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "admin", subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenService("secret", "backoffice", "backoffice-api", time.Hour)
	verifier := auth.NewTokenService("other", "backoffice", "backoffice-api", time.Hour)

	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.Error(t, err)
}

func TestValidateRejectsWrongAudience(t *testing.T) {
	issuer := auth.NewTokenService("secret", "backoffice", "other-api", time.Hour)
	verifier := auth.NewTokenService("secret", "backoffice", "backoffice-api", time.Hour)

	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := auth.NewTokenService("secret", "backoffice", "backoffice-api", -2*time.Minute)

	token, err := svc.Issue("admin")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := auth.NewTokenService("secret", "backoffice", "backoffice-api", time.Hour)

	_, err := svc.Validate("not-a-token")
	require.Error(t, err)
}
