package handler

import (
	"mime/multipart"
	"time"

	deliverycontext "github.com/carlosCACB333/bonny/internal/delivery/context"
	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const birthDateLayout = "2006-01-02"

// caller returns the authenticated account set by the auth middleware.
func caller(c echo.Context) (*entity.Account, error) {
	account, ok := deliverycontext.GetCaller(c)
	if !ok {
		return nil, domainerrors.ErrSessionInvalid
	}

	return account, nil
}

// formAttachment reads an optional uploaded file from the multipart form.
// The returned closer must be closed after the usecase has consumed the
// attachment; it is nil when no file was sent.
func formAttachment(c echo.Context, field string) (*service.Attachment, multipart.File, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Non-multipart requests and absent files both mean "no attachment".
		return nil, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open uploaded file")
	}

	attachment := &service.Attachment{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	}
	if attachment.ContentType == "" {
		attachment.ContentType = "application/octet-stream"
	}

	return attachment, file, nil
}

// formBirth parses an optional birth date sent as a form value in the
// YYYY-MM-DD format the clients use.
func formBirth(c echo.Context) (*time.Time, error) {
	raw := c.FormValue("birth")
	if raw == "" {
		return nil, nil
	}

	birth, err := time.Parse(birthDateLayout, raw)
	if err != nil {
		return nil, domainerrors.NewFieldError("birth", "La fecha debe tener el formato AAAA-MM-DD")
	}

	return &birth, nil
}
