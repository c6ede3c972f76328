// Package imagekit signs client-side uploads to the ImageKit CDN. The
// browser posts the file straight to ImageKit with these parameters.
package imagekit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TokenLifetime is how long a signature stays valid on the CDN side.
const TokenLifetime = 40 * time.Minute

var ErrNotConfigured = errors.New("imagekit is not configured")

type Params struct {
	Token       string `json:"token"`
	Expire      int64  `json:"expire"`
	Signature   string `json:"signature"`
	PublicKey   string `json:"publicKey"`
	URLEndpoint string `json:"urlEndpoint"`
	Folder      string `json:"folder"`
}

type Signer struct {
	PublicKey   string
	PrivateKey  string
	URLEndpoint string
	Folder      string
	Now         func() time.Time
}

func (s *Signer) Sign() (Params, error) {
	if s.PrivateKey == "" || s.PublicKey == "" {
		return Params{}, ErrNotConfigured
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	token := uuid.NewString()
	expire := now().Add(TokenLifetime).Unix()
	return Params{
		Token:       token,
		Expire:      expire,
		Signature:   Signature(s.PrivateKey, token, expire),
		PublicKey:   s.PublicKey,
		URLEndpoint: s.URLEndpoint,
		Folder:      s.Folder,
	}, nil
}

// Signature is hex(HMAC-SHA1(privateKey, token + expire)).
func Signature(privateKey, token string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
