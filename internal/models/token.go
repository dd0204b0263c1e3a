package models

// Token is the bearer token pair issued by the external API
// at login/signup time. The values are opaque to this layer;
// expiry and refresh are the API's responsibility.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func (t Token) IsZero() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}
