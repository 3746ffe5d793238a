package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/internal/application"
	"github.com/oksasatya/edu-platform/internal/interface/middleware"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/helpers"
	"github.com/oksasatya/edu-platform/pkg/response"
	"github.com/oksasatya/edu-platform/pkg/validation"
)

// statusOf maps an error kind to its HTTP status. Forbidden shares 401 with
// Unauthenticated; Conflict shares 400 with Validation.
func statusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindValidation, apperror.KindConflict:
		return http.StatusBadRequest
	case apperror.KindForbidden, apperror.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders err. Unclassified errors are logged and answered with a generic message.
func respondError(c *gin.Context, logger logrus.FieldLogger, err error) {
	if errors.Is(err, helpers.ErrStorageNotConfigured) {
		response.Error(c, http.StatusServiceUnavailable, "file uploads are not available", response.ErrorBody{Code: "unavailable"})
		return
	}
	ae, ok := apperror.As(err)
	if !ok {
		if logger != nil {
			helpers.LogError(logger, "request failed", err, logrus.Fields{
				"method":     c.Request.Method,
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			})
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", response.ErrorBody{Code: string(apperror.KindInternal)})
		return
	}
	response.Error(c, statusOf(ae.Kind), ae.Message, response.ErrorBody{Code: string(ae.Kind), Details: ae.Details})
}

// bindJSON decodes the body into dst; structural failures answer 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
			Code:    string(apperror.KindValidation),
			Details: validation.ToDetails(err),
		})
		return false
	}
	return true
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, apperror.Validation("invalid %s", key).WithDetails(map[string]string{key: "must be true or false"})
	}
	return &b, nil
}

// formUpload reads the multipart "file" field, bounded by maxBytes.
func formUpload(c *gin.Context, maxBytes int64) (application.Upload, func(), error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
	fh, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return application.Upload{}, nil, apperror.Validation("file too large").
			WithDetails(map[string]string{"file": "must be at most " + strconv.FormatInt(maxBytes, 10) + " bytes"})
	}
	if err != nil {
		return application.Upload{}, nil, apperror.Validation("file is required").
			WithDetails(map[string]string{"file": "is required"}).Wrap(err)
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return application.Upload{}, nil, apperror.Validation("file too large").
			WithDetails(map[string]string{"file": "must be at most " + strconv.FormatInt(maxBytes, 10) + " bytes"})
	}
	f, err := fh.Open()
	if err != nil {
		return application.Upload{}, nil, err
	}
	up := application.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	return up, func() { _ = f.Close() }, nil
}

func currentUser(c *gin.Context) string {
	return middleware.UserID(c)
}
