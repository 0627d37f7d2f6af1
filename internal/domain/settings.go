package domain

import "time"

// Settings is a singleton row, created lazily with empty defaults on first
// access.
type Settings struct {
	ID              uint       `gorm:"primaryKey" json:"id,omitempty"`
	OwnerName       string     `gorm:"size:140" json:"ownerName"`
	BusinessName    string     `gorm:"size:140" json:"businessName"`
	IBAN            string     `gorm:"size:40" json:"iban"`
	BIC             string     `gorm:"size:15" json:"bic"`
	BeneficiaryName string     `gorm:"size:140" json:"beneficiaryName"`
	LastBackupAt    *time.Time `json:"lastBackupAt,omitempty"`
}

// Beneficiary is the name put on SEPA QR payloads: the dedicated field when
// set, the owner name otherwise.
func (s *Settings) Beneficiary() string {
	if s.BeneficiaryName != "" {
		return s.BeneficiaryName
	}
	return s.OwnerName
}
