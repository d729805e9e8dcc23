package models

// code groups
const (
	GroupTrxType      = "TRX_TYPE"
	GroupWalletType   = "WALLET_TYPE"
	GroupCategory     = "CATEGORY"
	GroupBank         = "BANK"
	GroupSavingsCycle = "SAVINGS_CYCLE"
)

// CommonCode is read-only lookup data keyed by group and code.
type CommonCode struct {
	GroupCode   string `gorm:"column:grp_cd;primaryKey;size:30" json:"grp_cd"`
	Code        string `gorm:"column:cd;primaryKey;size:30" json:"cd"`
	Name        string `gorm:"column:cd_nm;size:100;not null" json:"cd_nm"`
	Description string `gorm:"column:cd_desc;size:255" json:"cd_desc"`
	SortOrder   int    `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	UseYN       YN     `gorm:"column:use_yn;size:1;not null;default:Y" json:"use_yn"`
}
