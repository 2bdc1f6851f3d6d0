package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 上传文件路径前缀
const (
	PrefixProfilePhotos  = "profile_photos/"
	PrefixFormImages     = "form_images/"
	PrefixQuestionImages = "question_images/"
	PrefixOptionImages   = "option_images/"
)

const MimeImage = "image/"
