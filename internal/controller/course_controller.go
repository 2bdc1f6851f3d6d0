package controller

import (
	"course_quest_backend/internal/service"
	"course_quest_backend/internal/util"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func actorFrom(ctx *gin.Context) (service.Actor, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return service.Actor{}, false
	}
	return service.Actor{UserID: claims.UserID, IsSuperuser: claims.IsSuperuser}, true
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Success 200 {array} model.Course
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses()
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} util.ErrorResponse
// @Router /course/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 携带 token 时当前用户为作者
// @Tags 课程
// @Accept json
// @Produce json
// @Param body body service.CourseInput true "课程信息"
// @Success 201 {object} model.Course
// @Failure 400 {object} util.ErrorResponse
// @Router /courses/create [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var in service.CourseInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, "Invalid JSON payload")
		return
	}

	var authorID *uint
	if actor, ok := actorFrom(ctx); ok {
		authorID = &actor.UserID
	}

	course, err := c.CourseService.CreateCourse(in, authorID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 修改课程
// @Description 仅作者或超级管理员
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.CourseInput true "要修改的字段"
// @Success 200 {object} model.Course
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /courses/{id}/edit [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var in service.CourseInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, "Invalid JSON payload")
		return
	}

	course, err := c.CourseService.UpdateCourse(id, actor, in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 仅作者或超级管理员，级联删除测验、题目、选项、报名和成绩
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.MessageResponse
// @Failure 403 {object} util.ErrorResponse
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.CourseService.DeleteCourse(id, actor); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.MessageResponse{Message: "Course deleted successfully"})
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	UserID uint `json:"user_id"`
}

// Enroll godoc
// @Summary 报名课程
// @Tags 课程
// @Accept json
// @Produce json
// @Param id path int true "课程ID"
// @Param body body EnrollRequest true "用户"
// @Success 200 {object} util.MessageResponse
// @Failure 400 {object} util.ErrorResponse "已报名"
// @Failure 404 {object} util.ErrorResponse
// @Router /courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid JSON payload")
		return
	}
	if req.UserID == 0 {
		util.BadRequest(ctx, "User ID is required")
		return
	}

	course, err := c.CourseService.Enroll(id, req.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.MessageResponse{
		Message: fmt.Sprintf("You have successfully enrolled in %s", course.Title),
	})
}

// CreateForm godoc
// @Summary 创建测验
// @Tags 课程内容
// @Accept mpfd
// @Produce json
// @Param id path int true "课程ID"
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param image formData file false "图片"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /courses/{id}/forms/create [post]
func (c *CourseController) CreateForm(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		util.BadRequest(ctx, "Invalid image")
		return
	}

	form, err := c.CourseService.CreateForm(ctx.Request.Context(), id, ctx.PostForm("title"), ctx.PostForm("description"), image)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{
		"message": "Form created successfully",
		"form_id": form.ID,
	})
}

// ListForms godoc
// @Summary 课程的测验列表
// @Description 最新的在前
// @Tags 课程内容
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /courses/{id}/forms [get]
func (c *CourseController) ListForms(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	forms, err := c.CourseService.ListForms(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"forms": forms})
}

// AddQuestion godoc
// @Summary 添加题目
// @Tags 课程内容
// @Accept mpfd
// @Produce json
// @Param id path int true "测验ID"
// @Param text formData string true "题干"
// @Param image formData file false "图片"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /forms/{id}/questions/add [post]
func (c *CourseController) AddQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		util.BadRequest(ctx, "Invalid image")
		return
	}

	question, err := c.CourseService.AddQuestion(ctx.Request.Context(), id, ctx.PostForm("text"), image)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{
		"message":     "Question added successfully",
		"question_id": question.ID,
	})
}

// AddOption godoc
// @Summary 添加选项
// @Tags 课程内容
// @Accept mpfd
// @Produce json
// @Param id path int true "题目ID"
// @Param text formData string true "选项内容"
// @Param is_correct formData bool false "是否正确"
// @Param image formData file false "图片"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /questions/{id}/options/add [post]
func (c *CourseController) AddOption(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	isCorrect := false
	if raw := ctx.PostForm("is_correct"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "Invalid is_correct")
			return
		}
		isCorrect = v
	}

	image, err := optionalFile(ctx, "image")
	if err != nil {
		util.BadRequest(ctx, "Invalid image")
		return
	}

	option, err := c.CourseService.AddOption(ctx.Request.Context(), id, ctx.PostForm("text"), isCorrect, image)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{
		"message":   "Option added successfully",
		"option_id": option.ID,
	})
}

// GetQuestions godoc
// @Summary 课程题目树
// @Description 测验 → 题目 → 选项
// @Tags 课程内容
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /courses/{id}/questions [get]
func (c *CourseController) GetQuestions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	forms, err := c.CourseService.QuestionTree(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"forms": forms})
}
