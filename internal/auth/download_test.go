package auth

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLink(now time.Time) DownloadLink {
	return DownloadLink{
		Secret:  []byte("test-secret"),
		BaseURL: "http://localhost:8080",
		now:     func() time.Time { return now },
	}
}

func TestSignAndVerify(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	d := fixedLink(now)

	tok := d.Sign("plan-123", now.Add(time.Hour))
	id, err := d.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "plan-123", id)
}

func TestVerifyErrors(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	d := fixedLink(now)
	valid := d.Sign("plan-123", now.Add(time.Hour))

	other := d
	other.Secret = []byte("other-secret")

	tests := []struct {
		name  string
		link  DownloadLink
		token string
		want  error
	}{
		{"no dot", d, "abc", ErrBadToken},
		{"bad base64", d, "!!!." + strings.Split(valid, ".")[1], ErrBadToken},
		{"wrong secret", other, valid, ErrBadSig},
		{"tampered signature", d, valid + "x", ErrBadSig},
		{"expired", d, d.Sign("plan-123", now.Add(-time.Second)), ErrExpired},
		{"empty plan id", d, d.Sign("", now.Add(time.Hour)), ErrBadPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.link.Verify(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestURL(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	d := fixedLink(now)

	raw := d.URL("3f1c", 24*time.Hour)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", u.Host)
	assert.Equal(t, "/plans/3f1c/download", u.Path)

	id, err := d.Verify(u.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, "3f1c", id)

	later := fixedLink(now.Add(25 * time.Hour))
	_, err = later.Verify(u.Query().Get("token"))
	assert.ErrorIs(t, err, ErrExpired)
}

func TestZeroClockUsesNow(t *testing.T) {
	d := DownloadLink{Secret: []byte("s")}
	id, err := d.Verify(d.Sign("p", time.Now().Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, "p", id)
}
