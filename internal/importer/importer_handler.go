package importer

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	importererrors "go-leave/internal/importer/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	DefaultMaxFileSize = 5 << 20
	// multipartOverhead leaves room for boundaries and other form fields.
	multipartOverhead   = 1 << 20
	templateFilename    = "employee_template.xlsx"
	templateContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// uploadFields are the form field names clients have historically used.
var uploadFields = []string{"file", "employeeFile", "excelFile"}

type Handler struct {
	service     Service
	maxFileSize int64
	logger      *zap.Logger
}

func NewHandler(service Service, maxFileSize int64, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("importer.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("importer.handler")
	}
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Handler{service: service, maxFileSize: maxFileSize, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("import request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) formFile(c *gin.Context) (*multipart.FileHeader, error) {
	for _, field := range uploadFields {
		fh, err := c.FormFile(field)
		if err == nil {
			return fh, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, h.tooLarge()
		}
	}
	return nil, importererrors.ErrFileRequired
}

func (h *Handler) tooLarge() error {
	return importererrors.ErrFileTooLarge.WithMessage(
		fmt.Sprintf("File is too large (max %d MB)", h.maxFileSize>>20),
	)
}

func (h *Handler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+multipartOverhead)

	fh, err := h.formFile(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if fh.Size > h.maxFileSize {
		h.writeServiceError(c, h.tooLarge())
		return
	}
	if !SupportedExtension(fh.Filename) {
		h.writeServiceError(c, importererrors.ErrUnsupportedFile)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, apperror.Wrap(err, importererrors.ErrUnreadableFile.Code,
			importererrors.ErrUnreadableFile.Message, importererrors.ErrUnreadableFile.HTTPStatus))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.writeServiceError(c, apperror.Wrap(err, importererrors.ErrUnreadableFile.Code,
			importererrors.ErrUnreadableFile.Message, importererrors.ErrUnreadableFile.HTTPStatus))
		return
	}

	rows, err := Parse(fh.Filename, data)
	if err != nil {
		h.logger.Warn("parse import file failed", zap.String("filename", fh.Filename), zap.Error(err))
		h.writeServiceError(c, apperror.Wrap(err, importererrors.ErrUnreadableFile.Code,
			"Error processing file: "+err.Error(), importererrors.ErrUnreadableFile.HTTPStatus))
		return
	}

	result, err := h.service.Import(c.Request.Context(), rows)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) Template(c *gin.Context) {
	data, err := h.service.Template()
	if err != nil {
		h.logger.Error("build import template failed", zap.Error(err))
		h.writeServiceError(c, apperror.ErrInternal)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, templateFilename))
	c.Data(http.StatusOK, templateContentType, data)
}
