package admintoken

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testIssuer(t *testing.T) *Issuer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("sekret123"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewIssuer(string(hash), "test-secret")
}

func TestVerifyPassword(t *testing.T) {
	issuer := testIssuer(t)

	assert.NoError(t, issuer.VerifyPassword("sekret123"))
	assert.ErrorIs(t, issuer.VerifyPassword("zle-haslo"), ErrBadPassword)
	assert.ErrorIs(t, issuer.VerifyPassword(""), ErrBadPassword)
}

func TestVerifyPassword_Unconfigured(t *testing.T) {
	issuer := NewIssuer("", "test-secret")
	assert.ErrorIs(t, issuer.VerifyPassword("sekret123"), ErrNotConfigured)
}

func TestIssueAndVerify(t *testing.T) {
	issuer := testIssuer(t)

	token, err := issuer.Issue(time.Now())
	require.NoError(t, err)
	assert.NoError(t, issuer.Verify(token))
}

func TestVerify_Expired(t *testing.T) {
	issuer := testIssuer(t)

	token, err := issuer.Issue(time.Now().Add(-TokenTTL - time.Minute))
	require.NoError(t, err)
	assert.ErrorIs(t, issuer.Verify(token), ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := testIssuer(t)
	other := NewIssuer("", "another-secret")

	token, err := other.Issue(time.Now())
	require.NoError(t, err)
	assert.ErrorIs(t, issuer.Verify(token), ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	issuer := testIssuer(t)
	assert.ErrorIs(t, issuer.Verify("admin:1700000000"), ErrInvalidToken)
}

func TestIssue_Unconfigured(t *testing.T) {
	issuer := NewIssuer("some-hash", "")
	_, err := issuer.Issue(time.Now())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/registrations", nil)
	_, ok := FromRequest(r)
	assert.False(t, ok)

	r = httptest.NewRequest(http.MethodGet, "/admin/registrations", nil)
	r.Header.Set("Authorization", "Bearer abc")
	token, ok := FromRequest(r)
	require.True(t, ok)
	assert.Equal(t, "abc", token)

	// Cookie wins over the header.
	r = httptest.NewRequest(http.MethodGet, "/admin/registrations", nil)
	r.Header.Set("Authorization", "Bearer abc")
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "def"})
	token, ok = FromRequest(r)
	require.True(t, ok)
	assert.Equal(t, "def", token)
}

func TestNewCookie(t *testing.T) {
	cookie := NewCookie("abc")
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "abc", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}
