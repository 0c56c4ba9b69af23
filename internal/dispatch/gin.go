package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Handle adapts a command to a gin handler. Fields come from path parameters
// when the command reads from the path, otherwise from the multipart form or
// the JSON body.
func Handle[T any](d *Dispatcher, cmd Command, op Operation[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := requestFrom(c, cmd)
		if err != nil {
			result := reject(http.StatusBadRequest, "malformed request", err)
			c.JSON(result.Status, result.Body)
			return
		}

		result := Execute(c.Request.Context(), d, req, cmd, op)
		c.JSON(result.Status, result.Body)
	}
}

func requestFrom(c *gin.Context, cmd Command) (Request, error) {
	fields := Fields{}

	if cmd.Options.FromPath {
		for _, p := range c.Params {
			fields[p.Key] = p.Value
		}
		return Request{Fields: fields}, nil
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return multipartRequest(c, cmd)
	}

	if c.Request.Body == nil {
		return Request{Fields: fields}, nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return Request{}, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Request{Fields: fields}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return Request{}, fmt.Errorf("decode body: %w", err)
	}
	return Request{Fields: fields}, nil
}

func multipartRequest(c *gin.Context, cmd Command) (Request, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return Request{}, fmt.Errorf("parse form: %w", err)
	}

	fields := Fields{}
	for key, values := range form.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	req := Request{Fields: fields}
	if cmd.Options.AssetField == "" {
		return req, nil
	}

	header, err := c.FormFile(cmd.Options.AssetField)
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return Request{}, fmt.Errorf("read %s: %w", cmd.Options.AssetField, err)
	}

	file, err := header.Open()
	if err != nil {
		return Request{}, fmt.Errorf("open %s: %w", cmd.Options.AssetField, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Request{}, fmt.Errorf("read %s: %w", cmd.Options.AssetField, err)
	}

	req.Asset = &model.Asset{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	return req, nil
}
