package controller

import (
	"course_quest_backend/internal/service"
	"course_quest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// CheckAnswersRequest answers 为 题目ID → 选项ID
type CheckAnswersRequest struct {
	UserID  uint          `json:"user_id"`
	Answers map[uint]uint `json:"answers"`
}

// CheckAnswers godoc
// @Summary 提交答案
// @Description 计分、发放经验并记录成绩；任一题目不属于该课程时整份答卷作废
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path int true "课程ID"
// @Param body body CheckAnswersRequest true "答案"
// @Success 200 {object} service.QuizOutcome
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse "并发冲突，重试次数用尽"
// @Router /courses/{id}/check-answers [post]
func (c *QuizController) CheckAnswers(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req CheckAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid JSON payload")
		return
	}
	if req.UserID == 0 {
		util.BadRequest(ctx, "User ID is required")
		return
	}
	if req.Answers == nil {
		req.Answers = map[uint]uint{}
	}

	outcome, err := c.QuizService.Submit(id, req.UserID, req.Answers)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}

// Ranking godoc
// @Summary 正确答题排行
// @Description 每个用户的累计正确数
// @Tags 测验
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /courses/users [get]
func (c *QuizController) Ranking(ctx *gin.Context) {
	totals, err := c.QuizService.Ranking()
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"user_correct_answers": totals})
}
