package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestIssueAndVerify(t *testing.T) {
	m := NewJWTManagerFromKeys(newKey(t), nil, "bloomviewer")

	tok, exp, err := m.IssueToken("alice", time.Hour, RoleEditor)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["sub"])
	assert.NotEmpty(t, claims["jti"])
	assert.True(t, HasRole(claims, RoleEditor))
	assert.False(t, HasRole(claims, "admin"))
}

func TestVerify_RejectsOtherKey(t *testing.T) {
	signer := NewJWTManagerFromKeys(newKey(t), nil, "bloomviewer")
	verifier := NewJWTManagerFromKeys(nil, &newKey(t).PublicKey, "bloomviewer")

	tok, _, err := signer.IssueToken("alice", time.Hour, RoleEditor)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(tok)
	assert.Error(t, err)
}

func TestVerify_RejectsExpiredAndWrongIssuer(t *testing.T) {
	key := newKey(t)
	m := NewJWTManagerFromKeys(key, nil, "bloomviewer")

	expired, _, err := m.IssueToken("alice", -time.Minute, RoleEditor)
	require.NoError(t, err)
	_, err = m.VerifyToken(expired)
	assert.Error(t, err)

	other := NewJWTManagerFromKeys(key, nil, "someone-else")
	foreign, _, err := other.IssueToken("alice", time.Hour, RoleEditor)
	require.NoError(t, err)
	_, err = m.VerifyToken(foreign)
	assert.Error(t, err)
}

func TestIssue_VerifyOnlyManager(t *testing.T) {
	m := NewJWTManagerFromKeys(nil, &newKey(t).PublicKey, "bloomviewer")
	_, _, err := m.IssueToken("alice", time.Hour)
	assert.ErrorIs(t, err, ErrNoSigningKey)
}

func TestNewJWTManager_FromPEMFiles(t *testing.T) {
	key := newKey(t)
	dir := t.TempDir()

	privPath := filepath.Join(dir, "priv.pem")
	pubPath := filepath.Join(dir, "pub.pem")
	privPem := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubDer, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPem := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDer})
	require.NoError(t, os.WriteFile(privPath, privPem, 0o600))
	require.NoError(t, os.WriteFile(pubPath, pubPem, 0o600))

	m, err := NewJWTManager(privPath, pubPath, "bloomviewer")
	require.NoError(t, err)
	tok, _, err := m.IssueToken("bob", time.Minute, RoleEditor)
	require.NoError(t, err)

	verifyOnly, err := NewJWTManager("", pubPath, "bloomviewer")
	require.NoError(t, err)
	_, err = verifyOnly.VerifyToken(tok)
	assert.NoError(t, err)

	_, err = NewJWTManager("", filepath.Join(dir, "missing.pem"), "bloomviewer")
	assert.Error(t, err)
}
