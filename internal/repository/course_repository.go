package repository

import (
	"course_quest_backend/internal/model"
	"course_quest_backend/internal/util"

	"gorm.io/gorm"
)

// CourseRepository 课程 → 测验 → 题目 → 选项
type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.DB.First(&course, id).Error; err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	return &course, nil
}

func (r *CourseRepository) ExistsByTitle(title string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.Model(&model.Course{}).Where("title = ?", title)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) List() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Model(course).
		Select("title", "description", "tags", "content").
		Updates(course).Error
}

// Delete 级联删除测验、题目、选项、报名和测验结果
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		formIDs := tx.Model(&model.Form{}).Select("id").Where("course_id = ?", id)
		questionIDs := tx.Model(&model.Question{}).Select("id").Where("form_id IN (?)", formIDs)

		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id IN (?)", formIDs).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Form{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.QuizResult{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Course{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrCourseNotFound
		}
		return nil
	})
}

func (r *CourseRepository) CreateForm(form *model.Form) error {
	return r.DB.Create(form).Error
}

func (r *CourseRepository) FindFormByID(id uint) (*model.Form, error) {
	var form model.Form
	if err := r.DB.First(&form, id).Error; err != nil {
		return nil, notFound(err, util.ErrFormNotFound)
	}
	return &form, nil
}

// ListForms 按 id 倒序
func (r *CourseRepository) ListForms(courseID uint) ([]model.Form, error) {
	var forms []model.Form
	err := r.DB.Where("course_id = ?", courseID).Order("id DESC").Find(&forms).Error
	return forms, err
}

func (r *CourseRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

// FindQuestionWithForm 预加载所属测验，用于判断题目归属的课程
func (r *CourseRepository) FindQuestionWithForm(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.DB.Preload("Form").First(&question, id).Error; err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	return &question, nil
}

func (r *CourseRepository) CreateOption(option *model.Option) error {
	return r.DB.Create(option).Error
}

// CorrectOptionID 返回题目第一个正确选项，没有时返回 nil
func (r *CourseRepository) CorrectOptionID(questionID uint) (*uint, error) {
	var options []model.Option
	err := r.DB.Where("question_id = ? AND is_correct = ?", questionID, true).
		Order("id ASC").
		Limit(1).
		Find(&options).Error
	if err != nil || len(options) == 0 {
		return nil, err
	}
	return &options[0].ID, nil
}

// QuestionTree 课程下所有测验、题目及选项
func (r *CourseRepository) QuestionTree(courseID uint) ([]model.Form, error) {
	var forms []model.Form
	err := r.DB.Where("course_id = ?", courseID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&forms).Error
	return forms, err
}

// CountQuestions 统计课程下所有测验的题目总数
func (r *CourseRepository) CountQuestions(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Joins("JOIN forms ON forms.id = questions.form_id").
		Where("forms.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
