package imagekit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := &Signer{
		PublicKey:   "public_abc",
		PrivateKey:  "private_xyz",
		URLEndpoint: "https://ik.imagekit.io/woodveneer",
		Folder:      "/products",
		Now:         func() time.Time { return now },
	}
	p, err := s.Sign()
	require.NoError(t, err)

	_, err = uuid.Parse(p.Token)
	assert.NoError(t, err)
	assert.Equal(t, now.Unix()+2400, p.Expire)
	assert.Equal(t, "public_abc", p.PublicKey)
	assert.Equal(t, "/products", p.Folder)

	mac := hmac.New(sha1.New, []byte("private_xyz"))
	mac.Write([]byte(p.Token))
	mac.Write([]byte("1709289600"))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), p.Signature)
	assert.Len(t, p.Signature, 40)
}

func TestSignTokensDiffer(t *testing.T) {
	s := &Signer{PublicKey: "pub", PrivateKey: "priv"}
	a, err := s.Sign()
	require.NoError(t, err)
	b, err := s.Sign()
	require.NoError(t, err)
	assert.NotEqual(t, a.Token, b.Token)
	assert.NotEqual(t, a.Signature, b.Signature)
}

func TestSignWithoutKeys(t *testing.T) {
	_, err := (&Signer{PublicKey: "pub"}).Sign()
	assert.ErrorIs(t, err, ErrNotConfigured)
}
