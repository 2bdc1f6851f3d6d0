package controller

import (
	"course_quest_backend/internal/util"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径参数 :id，失败时已写入 400
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := util.ParseID(ctx.Param(name))
	if err != nil {
		util.BadRequest(ctx, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// optionalFile 未上传时返回 nil
func optionalFile(ctx *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return fh, err
}
