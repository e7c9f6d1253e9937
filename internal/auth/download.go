// Package auth signs and verifies the expiring links used to download plans.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadToken   = errors.New("bad token")
	ErrBadSig     = errors.New("invalid signature")
	ErrExpired    = errors.New("expired")
	ErrBadPayload = errors.New("bad payload")
)

type DownloadLink struct {
	Secret  []byte
	BaseURL string // eg., http://localhost:8080
	now     func() time.Time
}

func (d DownloadLink) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

// Sign returns "<payload>.<sig>", both raw URL-safe base64.
func (d DownloadLink) Sign(planID string, exp time.Time) string {
	msg := planID + "|" + strconv.FormatInt(exp.Unix(), 10)
	mac := hmac.New(sha256.New, d.Secret)
	mac.Write([]byte(msg))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	payload := base64.RawURLEncoding.EncodeToString([]byte(msg))
	return payload + "." + sig
}

// Verify checks the signature and expiry and returns the plan ID.
func (d DownloadLink) Verify(token string) (planID string, err error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", ErrBadToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrBadToken
	}

	mac := hmac.New(sha256.New, d.Secret)
	mac.Write(payload)

	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return "", ErrBadSig
	}

	fields := strings.SplitN(string(payload), "|", 2)
	if len(fields) != 2 || fields[0] == "" {
		return "", ErrBadPayload
	}
	expUnix, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return "", ErrBadPayload
	}

	if d.clock().After(time.Unix(expUnix, 0)) {
		return "", ErrExpired
	}
	return fields[0], nil
}

// URL builds the absolute download link for planID, valid for ttl.
func (d DownloadLink) URL(planID string, ttl time.Duration) string {
	tok := d.Sign(planID, d.clock().Add(ttl))
	u, err := url.Parse(d.BaseURL)
	if err != nil {
		u = &url.URL{}
	}
	u.Path = "/plans/" + url.PathEscape(planID) + "/download"
	q := u.Query()
	q.Set("token", tok)
	u.RawQuery = q.Encode()
	return u.String()
}
