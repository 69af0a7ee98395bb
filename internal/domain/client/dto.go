package client

type AccessResponse struct {
	Allowed   bool    `json:"allowed"`
	Reason    *string `json:"reason,omitempty"`
	ClientID  *string `json:"client_id,omitempty"`
	ScanTagID *string `json:"scantag_id,omitempty"`
}
