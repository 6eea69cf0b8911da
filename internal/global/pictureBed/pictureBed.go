package pictureBed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"sportify/config"
)

// ErrS3Disabled 未配置对象存储时预签名不可用
var ErrS3Disabled = errors.New("对象存储未配置")

// PictureBed 保存活动封面，配置了 S3 时上传到对象存储，否则写本地目录
type PictureBed struct {
	SaveDir string // 本地保存目录
	BaseURL string // 本地文件访问前缀
	S3      config.S3

	once     sync.Once
	initErr  error
	s3Client *s3.Client
	uploader *manager.Uploader
}

func NewPictureBed(storage config.Storage, s3cfg config.S3) *PictureBed {
	return &PictureBed{
		SaveDir: storage.Home,
		BaseURL: strings.TrimRight(storage.BaseURL, "/"),
		S3:      s3cfg,
	}
}

// InitS3 惰性创建客户端，只执行一次
func (pb *PictureBed) InitS3(ctx context.Context) error {
	pb.once.Do(func() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(pb.S3.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(pb.S3.AccessKey, pb.S3.SecretAccessKey, ""),
			),
		)
		if err != nil {
			pb.initErr = err
			return
		}
		pb.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if pb.S3.Endpoint != "" {
				o.BaseEndpoint = aws.String(pb.S3.Endpoint)
			}
			o.UsePathStyle = pb.S3.UsePathStyle
		})
		pb.uploader = manager.NewUploader(pb.s3Client)
	})
	return pb.initErr
}

func uniqueName(filename string) string {
	return time.Now().Format("20060102") + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

func (pb *PictureBed) objectKey(name string) string {
	return strings.TrimLeft(path.Join(strings.Trim(pb.S3.Prefix, "/"), name), "/")
}

func (pb *PictureBed) objectURL(key string) string {
	base := strings.TrimRight(pb.S3.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(pb.S3.Endpoint, "/")
	}
	if pb.S3.UsePathStyle {
		return base + "/" + pb.S3.Bucket + "/" + key
	}
	return base + "/" + key
}

// Upload 保存上传文件并返回访问 URL
func (pb *PictureBed) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if !pb.S3.Enabled() {
		return pb.SaveImage(fileHeader)
	}
	if err := pb.InitS3(ctx); err != nil {
		return "", fmt.Errorf("初始化 S3 客户端失败: %w", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := pb.objectKey(uniqueName(fileHeader.Filename))
	if _, err = pb.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(pb.S3.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("上传到对象存储失败: %w", err)
	}
	return pb.objectURL(key), nil
}

// SaveImage 保存到本地目录
func (pb *PictureBed) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(pb.SaveDir, os.ModePerm); err != nil {
		return "", err
	}
	filename := uniqueName(fileHeader.Filename)
	dst, err := os.Create(filepath.Join(pb.SaveDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return pb.BaseURL + "/" + filename, nil
}
