package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("user-1", RoleManager)
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, RoleManager, claims.Role)
}

func TestJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	token, err := m.GenerateAccessToken("user-1", RoleStaff)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.ParseAndValidate(token)
	assert.Error(t, err, "expired token must be rejected")

	other := NewJWTManager("other-secret", time.Hour)
	foreign, err := other.GenerateAccessToken("user-1", RoleAdmin)
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour).ParseAndValidate(foreign)
	assert.Error(t, err, "token signed with another secret must be rejected")
}

func TestJWTRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).ParseAndValidate(unsigned)
	assert.Error(t, err)
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleManager))
	assert.True(t, RoleManager.AtLeast(RoleManager))
	assert.False(t, RoleStaff.AtLeast(RoleManager))
	assert.False(t, Role("").AtLeast(RoleStaff))
	assert.False(t, Role("owner").AtLeast(RoleStaff))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("secret", time.Hour)

	r := gin.New()
	r.GET("/managers", AuthRequired(m), RequireRole(RoleManager), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/managers", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, do("").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer garbage").Code)

	staffToken, _ := m.GenerateAccessToken("staff-1", RoleStaff)
	assert.Equal(t, http.StatusForbidden, do("Bearer "+staffToken).Code)

	mgrToken, _ := m.GenerateAccessToken("mgr-1", RoleManager)
	w := do("bearer " + mgrToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mgr-1", w.Body.String())
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)
	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.Error(t, h.Compare(hash, "wrong horse"))
}
