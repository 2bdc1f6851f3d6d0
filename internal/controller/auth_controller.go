package controller

import (
	"course_quest_backend/internal/service"
	"course_quest_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary 注册新用户
// @Description multipart 表单注册，头像可选
// @Tags 认证
// @Accept  multipart/form-data
// @Produce  json
// @Param username formData string true "用户名"
// @Param email formData string true "邮箱"
// @Param password formData string true "密码"
// @Param password2 formData string true "确认密码"
// @Param profile_photo formData file false "头像"
// @Success 201 {object} util.MessageResponse "注册成功"
// @Failure 400 {object} util.ErrorResponse "参数错误或用户名已存在"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	photo, err := optionalFile(ctx, "profile_photo")
	if err != nil {
		util.BadRequest(ctx, "Invalid profile photo")
		return
	}

	user, err := c.AuthService.Register(ctx.Request.Context(), service.RegisterInput{
		Username:  ctx.PostForm("username"),
		Email:     ctx.PostForm("email"),
		Password:  ctx.PostForm("password"),
		Password2: ctx.PostForm("password2"),
		Photo:     photo,
	})
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userid":  user.ID,
	})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login godoc
// @Summary 用户登录
// @Description 校验用户名密码并返回 JWT
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录凭据"
// @Success 200 {object} map[string]interface{} "userid 与 token"
// @Failure 400 {object} util.ErrorResponse "请求参数错误"
// @Failure 401 {object} util.ErrorResponse "用户名或密码错误"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid JSON")
		return
	}

	user, token, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"userid": user.ID,
		"token":  token,
	})
}
