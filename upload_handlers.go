package main

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"finance-analyzer/pkg/csvimport"

	"github.com/gin-gonic/gin"
)

// multipartOverhead allows for boundaries and part headers around the file.
const multipartOverhead = 64 << 10

// uploadFileHandler imports a multipart "file" field synchronously and returns the Upload record.
func (a *app) uploadFileHandler(c *gin.Context) {
	limit := a.cfg.UploadMaxBytes + multipartOverhead
	if c.Request.ContentLength > limit {
		a.fileTooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	file, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		a.fileTooLarge(c)
		return
	}
	if err != nil || file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please select a file to upload"})
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please upload a CSV file"})
		return
	}
	if file.Size > a.cfg.UploadMaxBytes {
		a.fileTooLarge(c)
		return
	}
	f, err := file.Open()
	if err != nil {
		a.respondError(c, fmt.Errorf("open uploaded file: %w", err))
		return
	}
	defer f.Close()

	up, err := a.importer.Process(c.Request.Context(), csvimport.Source{
		Name:        filepath.Base(file.Filename),
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
		Body:        f,
	}, caller(c).Username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error processing file: " + err.Error()})
		return
	}
	respondOK(c, http.StatusOK, fmt.Sprintf("File uploaded and processed successfully. %d transactions imported.", up.RecordsCount), toUpload(up))
}

func (a *app) fileTooLarge(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("File too large (max %d bytes)", a.cfg.UploadMaxBytes)})
}

func (a *app) listUploadsHandler(c *gin.Context) {
	items, err := a.uploads.List(c.Request.Context(), caller(c).UserID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	out := make([]uploadResponse, 0, len(items))
	for i := range items {
		out = append(out, toUpload(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (a *app) getUploadHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	up, err := a.uploads.Get(c.Request.Context(), id, caller(c).UserID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUpload(up))
}
