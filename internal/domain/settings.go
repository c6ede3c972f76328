package domain

import (
	"time"

	"gorm.io/datatypes"
)

type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Youtube   string `json:"youtube"`
	Zalo      string `json:"zalo"`
}

type SEO struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	OgImage         string `json:"ogImage"`
}

type Maintenance struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

// SiteSettings is stored as a single row with ID SettingsRowID.
type SiteSettings struct {
	ID              int                            `gorm:"primaryKey;autoIncrement:false" json:"-"`
	SiteName        string                         `gorm:"size:255" json:"siteName"`
	SiteDescription string                         `gorm:"type:text" json:"siteDescription"`
	SiteKeywords    string                         `gorm:"type:text" json:"siteKeywords"`
	ContactEmail    string                         `gorm:"size:255" json:"contactEmail"`
	ContactPhone    string                         `gorm:"size:50" json:"contactPhone"`
	ContactAddress  string                         `gorm:"type:text" json:"contactAddress"`
	SocialMedia     datatypes.JSONType[SocialMedia] `json:"socialMedia"`
	SEO             datatypes.JSONType[SEO]         `gorm:"column:seo" json:"seo"`
	Maintenance     datatypes.JSONType[Maintenance] `json:"maintenance"`
	UpdatedAt       time.Time                      `json:"updatedAt"`
}

const SettingsRowID = 1

func DefaultSettings() SiteSettings {
	return SiteSettings{
		ID:              SettingsRowID,
		SiteName:        "WoodVeneer Pro",
		SiteDescription: "Chuyên cung cấp gỗ ép tường cao cấp với đa dạng màu sắc và vân hoạ tiết",
		SiteKeywords:    "gỗ ép tường, gỗ ép cao cấp, vân gỗ, nội thất, trang trí tường",
		ContactEmail:    "info@woodveneerpro.com",
		ContactPhone:    "0123.456.789",
		ContactAddress:  "123 Đường ABC, Quận 1, TP.HCM",
		SocialMedia: datatypes.NewJSONType(SocialMedia{
			Facebook:  "https://facebook.com/woodveneerpro",
			Instagram: "https://instagram.com/woodveneerpro",
			Youtube:   "https://youtube.com/woodveneerpro",
			Zalo:      "0987.654.321",
		}),
		SEO: datatypes.NewJSONType(SEO{
			MetaTitle:       "WoodVeneer Pro - Gỗ Ép Tường Cao Cấp",
			MetaDescription: "Chuyên cung cấp gỗ ép tường cao cấp với đa dạng màu sắc và vân hoạ tiết. Chất lượng tốt nhất, giá cả hợp lý.",
		}),
		Maintenance: datatypes.NewJSONType(Maintenance{
			Message: "Website đang bảo trì. Vui lòng quay lại sau.",
		}),
	}
}

// SettingsPatch holds the fields of a partial settings update. Nil means untouched.
type SettingsPatch struct {
	SiteName        *string      `json:"siteName"`
	SiteDescription *string      `json:"siteDescription"`
	SiteKeywords    *string      `json:"siteKeywords"`
	ContactEmail    *string      `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone    *string      `json:"contactPhone"`
	ContactAddress  *string      `json:"contactAddress"`
	SocialMedia     *SocialMedia `json:"socialMedia"`
	SEO             *SEO         `json:"seo"`
	Maintenance     *Maintenance `json:"maintenance"`
}

func (p SettingsPatch) Apply(s *SiteSettings) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.SiteName, p.SiteName)
	set(&s.SiteDescription, p.SiteDescription)
	set(&s.SiteKeywords, p.SiteKeywords)
	set(&s.ContactEmail, p.ContactEmail)
	set(&s.ContactPhone, p.ContactPhone)
	set(&s.ContactAddress, p.ContactAddress)
	if p.SocialMedia != nil {
		s.SocialMedia = datatypes.NewJSONType(*p.SocialMedia)
	}
	if p.SEO != nil {
		s.SEO = datatypes.NewJSONType(*p.SEO)
	}
	if p.Maintenance != nil {
		s.Maintenance = datatypes.NewJSONType(*p.Maintenance)
	}
}
