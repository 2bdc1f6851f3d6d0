package controller

import (
	"course_quest_backend/internal/service"
	"course_quest_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService        *service.UserService
	AchievementService *service.AchievementService
}

func NewUserController(userService *service.UserService, achievementService *service.AchievementService) *UserController {
	return &UserController{
		UserService:        userService,
		AchievementService: achievementService,
	}
}

// GetProfile godoc
// @Summary 获取用户资料
// @Description 包含等级和经验
// @Tags 用户
// @Produce json
// @Param userid query int true "用户ID"
// @Success 200 {object} model.User
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	raw := ctx.Query("userid")
	if raw == "" {
		util.BadRequest(ctx, "userid is required")
		return
	}
	id, err := util.ParseID(raw)
	if err != nil {
		util.BadRequest(ctx, "Invalid userid")
		return
	}

	user, err := c.UserService.GetUserByID(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateUserRequest 未传的字段保持不变
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// UpdateUser godoc
// @Summary 修改用户资料
// @Description 支持 JSON 或 multipart（可上传 profile_photo）
// @Tags 用户
// @Accept json,mpfd
// @Produce json
// @Param id path int true "用户ID"
// @Param body body UpdateUserRequest false "资料"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /users/{id}/edit [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var in service.UpdateUserInput
	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		if v, ok := ctx.GetPostForm("username"); ok {
			in.Username = &v
		}
		if v, ok := ctx.GetPostForm("email"); ok {
			in.Email = &v
		}
		photo, err := optionalFile(ctx, "profile_photo")
		if err != nil {
			util.BadRequest(ctx, "Invalid profile photo")
			return
		}
		in.Photo = photo
	} else {
		var req UpdateUserRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, "Invalid JSON payload")
			return
		}
		in.Username = req.Username
		in.Email = req.Email
	}

	user, err := c.UserService.UpdateUser(ctx.Request.Context(), id, in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message": "User updated successfully",
		"user_id": user.ID,
	})
}

// DeleteUser godoc
// @Summary 删除用户
// @Description 同时删除通知、报名、测验结果和成就
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /delete_user/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.UserService.DeleteUser(id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.MessageResponse{Message: "User deleted successfully"})
}

// GetNotifications godoc
// @Summary 用户通知
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /users/{id}/notifications [get]
func (c *UserController) GetNotifications(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	notifications, err := c.UserService.Notifications(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"notifications": notifications})
}

// GetLevelHistory godoc
// @Summary 升级历史
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /users/{id}/level-history [get]
func (c *UserController) GetLevelHistory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	history, err := c.UserService.LevelHistory(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"level_history": history})
}

// EnrolledCourse 用户已报名的课程
type EnrolledCourse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// GetEnrolledCourses godoc
// @Summary 用户已报名课程
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /user/{id}/courses [get]
func (c *UserController) GetEnrolledCourses(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	courses, err := c.UserService.EnrolledCourses(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	result := make([]EnrolledCourse, 0, len(courses))
	for _, course := range courses {
		result = append(result, EnrolledCourse{ID: course.ID, Title: course.Title})
	}
	util.Success(ctx, gin.H{"courses": result})
}

// GetAchievements godoc
// @Summary 判定并返回用户成就
// @Description 每次调用都会重新判定，已获得的成就不会重复发放
// @Tags 成就系统
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /users/{id}/achievements-view [get]
func (c *UserController) GetAchievements(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	achievements, err := c.AchievementService.Evaluate(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"achievements": achievements})
}
