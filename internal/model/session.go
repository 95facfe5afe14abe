package model

// Session is the token pair minted on login or refresh. It is never
// persisted; validity is carried entirely by the tokens themselves.
// Timestamps are epoch milliseconds.
type Session struct {
	AccessToken        string `json:"accessToken"`
	ExpiresIn          int64  `json:"expiresIn"`
	RefreshToken       string `json:"refreshToken"`
	RefreshTokenExpire int64  `json:"refreshTokenExpire"`
	IssuedAt           int64  `json:"issuedAt"`
}
