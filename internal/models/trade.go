package models

// TradeAction is the direction taken on a binary-option trade.
type TradeAction string

const (
	TradeActionCall TradeAction = "CALL"
	TradeActionPut  TradeAction = "PUT"
)

// TradeOutcome is the manually entered result of a trade.
type TradeOutcome string

const (
	TradeOutcomeWin  TradeOutcome = "WIN"
	TradeOutcomeLoss TradeOutcome = "LOSS"
)

// Trade is a journaled binary-option trade with its screenshot.
// Trades are immutable after creation and feed the daily timeline
// statistics only.
type Trade struct {
	Base
	UserID         uint         `gorm:"not null;index" json:"user_id"`
	ImageData      string       `gorm:"type:text" json:"image_data,omitempty"`
	ImageMimeType  string       `json:"image_mime_type,omitempty"`
	ResultImage    string       `gorm:"type:text" json:"result_image,omitempty"`
	ResultMimeType string       `json:"result_mime_type,omitempty"`
	ImageURL       string       `json:"image_url,omitempty"`
	Action         TradeAction  `gorm:"not null" json:"action"`
	Outcome        TradeOutcome `gorm:"not null" json:"outcome"`
	AmountInvested float64      `gorm:"not null" json:"amount_invested"`
	Payout         float64      `gorm:"not null" json:"payout"`
}
