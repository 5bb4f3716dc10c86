package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ValidateTelegramInitData verifies Telegram WebApp init_data against the
// bot token (HMAC-SHA256 with the WebAppData-derived key) and rejects
// payloads whose auth_date is older than one hour, to limit replays.
func ValidateTelegramInitData(initData, botToken string) (url.Values, bool) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, false
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, false
	}
	values.Del("hash")

	var dataCheck []string
	for k, v := range values {
		dataCheck = append(dataCheck, k+"="+strings.Join(v, ""))
	}
	sort.Strings(dataCheck)
	dataString := strings.Join(dataCheck, "\n")

	keyMac := hmac.New(sha256.New, []byte("WebAppData"))
	keyMac.Write([]byte(botToken))
	secret := keyMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(dataString))
	calculated := mac.Sum(nil)

	provided, err := hex.DecodeString(hash)
	if err != nil {
		return nil, false
	}
	if !hmac.Equal(calculated, provided) {
		return nil, false
	}

	authDateStr := values.Get("auth_date")
	if authDateStr == "" {
		return nil, false
	}
	authDate, err := strconv.ParseInt(authDateStr, 10, 64)
	if err != nil {
		return nil, false
	}

	now := time.Now().Unix()
	// small forward skew allowed, anything older than an hour rejected
	if now-authDate > 3600 || authDate-now > 300 {
		return nil, false
	}

	return values, true
}
