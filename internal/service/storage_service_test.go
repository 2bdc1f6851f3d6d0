package service

import (
	"context"
	"course_quest_backend/internal/config"
	"course_quest_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveImageLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = util.StorageLocal
	cfg.Storage.LocalPath = t.TempDir()
	storage := NewStorageService(cfg)

	url, err := storage.SaveImage(context.Background(), util.PrefixOptionImages, fileHeader(t, "a.png", pngHeader))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/option_images/"))

	stored, err := os.ReadFile(filepath.Join(cfg.Storage.LocalPath, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	_, err = storage.SaveImage(context.Background(), util.PrefixOptionImages, fileHeader(t, "a.png", []byte("hello")))
	assert.ErrorIs(t, err, util.ErrInvalidFileType)
}

func TestNewStorageServiceFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "unknown"
	cfg.Storage.LocalPath = t.TempDir()

	storage := NewStorageService(cfg)
	_, ok := storage.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}

func TestOSSURL(t *testing.T) {
	p := &OSSStorageProvider{Config: &config.StorageConfig{
		OSSBucket:   "quest",
		OSSEndpoint: "oss-cn-hangzhou.aliyuncs.com",
	}}
	assert.Equal(t, "https://quest.oss-cn-hangzhou.aliyuncs.com/form_images/x.png", p.GetURL("form_images/x.png"))
}
