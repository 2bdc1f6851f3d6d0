package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ValidateMimeType 深度校验文件 MIME 类型，返回可重新读取完整内容的 reader
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, io.Reader, error) {
	buffer := make([]byte, 512)
	n, err := io.ReadFull(reader, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head := buffer[:n]

	mimeType := http.DetectContentType(head)
	full := io.MultiReader(bytes.NewReader(head), reader)

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, full, nil
		}
	}

	return mimeType, nil, fmt.Errorf("%w: %s", ErrInvalidFileType, mimeType)
}
