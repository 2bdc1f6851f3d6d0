package controller

import (
	"course_quest_backend/internal/service"
	"course_quest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// SeedAchievements godoc
// @Summary 初始化成就目录
// @Description 写入缺失的默认成就，已存在的不覆盖
// @Tags 成就系统
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /achievements [post]
func (c *AchievementController) SeedAchievements(ctx *gin.Context) {
	catalog, err := c.AchievementService.SeedDefaults()
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"default_achievements": catalog,
		"status":               "success",
	})
}
