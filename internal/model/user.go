package model

// swagger:model User
type User struct {
	BaseModel
	Username     string `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string `gorm:"size:100;not null" json:"-"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	IsStaff      bool   `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool   `gorm:"default:false" json:"is_superuser"`
	ProfilePhoto string `gorm:"size:255" json:"profile_photo"`
	Level        int    `gorm:"not null;default:1" json:"level"`
	Experience   int    `gorm:"not null;default:0" json:"experience"`
}

func (User) TableName() string {
	return "users"
}
