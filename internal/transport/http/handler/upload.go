package handler

import (
	"encoding/json"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
)

// openUpload 调用方负责 close
func openUpload(c *gin.Context, field string) (service.Upload, func(), error) {
	fh, err := ez.FormFile(c, field)
	if err != nil {
		return service.Upload{}, nil, err
	}
	return fromHeader(fh)
}

func fromHeader(fh *multipart.FileHeader) (service.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return service.Upload{}, nil, apperr.BadRequest("cannot read uploaded file")
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	up := service.Upload{Name: fh.Filename, ContentType: ct, Size: fh.Size, Body: f}
	return up, func() { _ = f.Close() }, nil
}

// formJSON 把 multipart 中的 JSON 字段解码并按 binding 标签校验
func formJSON(c *gin.Context, field string, out any) error {
	raw := c.PostForm(field)
	if raw == "" {
		return apperr.BadRequest(field + " is required")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return apperr.BadRequest("invalid " + field + ": " + err.Error())
	}
	if err := binding.Validator.ValidateStruct(out); err != nil {
		return apperr.BadRequest(err.Error())
	}
	return nil
}
