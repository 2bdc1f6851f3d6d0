package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;uniqueIndex;not null" json:"title"`
	AuthorID    *uint  `gorm:"index" json:"author_id"`
	Description string `gorm:"size:500" json:"description"`
	Tags        string `gorm:"size:255" json:"tags"`
	Content     string `gorm:"type:text" json:"content"`
	Forms       []Form `gorm:"foreignKey:CourseID" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// Form 课程下的测验
type Form struct {
	BaseModel
	CourseID    uint       `gorm:"index;not null" json:"course_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Image       string     `gorm:"size:255" json:"image"`
	Questions   []Question `gorm:"foreignKey:FormID" json:"questions,omitempty"`
}

func (Form) TableName() string {
	return "forms"
}

type Question struct {
	BaseModel
	FormID  uint     `gorm:"index;not null" json:"form_id"`
	Text    string   `gorm:"size:255;not null" json:"text"`
	Image   string   `gorm:"size:255" json:"image"`
	Form    *Form    `gorm:"foreignKey:FormID" json:"-"`
	Options []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Text       string `gorm:"size:255;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"is_correct"`
	Image      string `gorm:"size:255" json:"image"`
}

func (Option) TableName() string {
	return "options"
}
