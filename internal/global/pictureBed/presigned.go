package pictureBed

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PresignedUploadRequest struct {
	Filename    string
	ContentType string
	ExpiresIn   time.Duration // 默认 15 分钟
}

type PresignedUploadResponse struct {
	UploadURL string            `json:"uploadUrl"`
	FileKey   string            `json:"fileKey"`
	FileURL   string            `json:"fileUrl"` // 上传完成后写回活动的 coverUrl
	ExpiresAt time.Time         `json:"expiresAt"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
}

// GeneratePresignedUploadURL 生成前端直传对象存储的 PUT 地址
func (pb *PictureBed) GeneratePresignedUploadURL(ctx context.Context, req PresignedUploadRequest) (*PresignedUploadResponse, error) {
	if !pb.S3.Enabled() {
		return nil, ErrS3Disabled
	}
	if req.Filename == "" {
		return nil, fmt.Errorf("文件名不能为空")
	}
	if err := pb.InitS3(ctx); err != nil {
		return nil, fmt.Errorf("初始化 S3 客户端失败: %w", err)
	}
	if req.ExpiresIn <= 0 {
		req.ExpiresIn = 15 * time.Minute
	}
	if req.ContentType == "" {
		req.ContentType = "application/octet-stream"
	}

	key := pb.objectKey(uniqueName(req.Filename))
	presigned, err := s3.NewPresignClient(pb.s3Client).PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(pb.S3.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}, s3.WithPresignExpires(req.ExpiresIn))
	if err != nil {
		return nil, fmt.Errorf("生成预签名 URL 失败: %w", err)
	}

	resp := &PresignedUploadResponse{
		UploadURL: presigned.URL,
		FileKey:   key,
		FileURL:   pb.objectURL(key),
		ExpiresAt: time.Now().Add(req.ExpiresIn),
		Method:    presigned.Method,
		Headers:   map[string]string{"Content-Type": req.ContentType},
	}
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			resp.Headers[k] = v[0]
		}
	}
	return resp, nil
}
