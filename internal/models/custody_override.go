package models

// CustodyParty identifies who is responsible for a custody day.
type CustodyParty string

const (
	CustodyMom CustodyParty = "MOM"
	CustodyDad CustodyParty = "DAD"
)

// CustodyOverride forces the responsible party for one calendar day,
// superseding the computed rotation. Date (YYYY-MM-DD) is unique per
// user; deleting the row reverts the day to the computed schedule.
// OriginalResponsible keeps what the rotation would have produced so
// repeated toggles never lose the true baseline.
type CustodyOverride struct {
	Base
	UserID              uint         `gorm:"not null;uniqueIndex:idx_custody_user_date" json:"user_id"`
	Date                string       `gorm:"not null;size:10;uniqueIndex:idx_custody_user_date" json:"date"`
	Responsible         CustodyParty `gorm:"not null" json:"responsible"`
	OriginalResponsible CustodyParty `gorm:"not null" json:"original_responsible"`
}
