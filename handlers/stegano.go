package handlers

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Nerggg/multi-stegano/models"
	"github.com/Nerggg/multi-stegano/orchestrate"
	"github.com/gin-gonic/gin"
)

// writeUploadToTemp copies a multipart file to a temp file carrying the
// same extension, since the orchestrate builders work on file paths rather
// than readers (the same constraint as the hide/unveil CLI surface).
func writeUploadToTemp(c *gin.Context, fieldName string) (string, func(), error) {
	header, err := c.FormFile(fieldName)
	if err != nil {
		return "", func() {}, err
	}
	file, err := header.Open()
	if err != nil {
		return "", func() {}, err
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "stegano-upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", func() {}, err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", func() {}, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }
	return tmp.Name(), cleanup, nil
}

// SteganoHideHandler embeds a message and/or files into a cover image or
// audio file.
//
//	@Summary		Hide a message in a cover file
//	@Description	Embeds text and/or files into a PNG/WAV/JPEG cover, optionally encrypted with a password.
//	@Tags			Stegano
//	@Accept			multipart/form-data
//	@Produce		application/octet-stream
//	@Param			cover					formData	file	true	"Cover file (png, wav, jpg/jpeg)"
//	@Param			text					formData	string	false	"Text message to hide"
//	@Param			files					formData	file	false	"Files to hide (repeatable)"
//	@Param			password				formData	string	false	"Password enabling encryption"
//	@Param			color_step_increment	formData	int		false	"LSB color channel step (PNG covers only)"
//	@Success		200						{file}		binary	"The cover file with the message hidden inside"
//	@Failure		400						{object}	models.ErrorResponse
//	@Failure		500						{object}	models.ErrorResponse
//	@Router			/stegano/hide [post]
func (h *Handlers) SteganoHideHandler(c *gin.Context) {
	startTime := time.Now()

	coverPath, cleanupCover, err := writeUploadToTemp(c, "cover")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_COVER", "Cover file not provided")
		return
	}
	defer cleanupCover()
	coverExt := filepath.Ext(c.PostForm("cover_filename"))
	if coverExt == "" {
		if fh, ferr := c.FormFile("cover"); ferr == nil {
			coverExt = filepath.Ext(fh.Filename)
		}
	}

	text := c.PostForm("text")
	var fileHeaders []*multipart.FileHeader
	if form, ferr := c.MultipartForm(); ferr == nil && form != nil {
		fileHeaders = form.File["files"]
	}

	if text == "" && len(fileHeaders) == 0 {
		sendError(c, http.StatusBadRequest, "MISSING_MESSAGE", "Provide text or at least one file to hide")
		return
	}

	outPath := coverPath + "-out" + coverExt
	defer os.Remove(outPath)

	req := orchestrate.PrepareHide().WithImage(coverPath).WithOutput(outPath)
	if text != "" {
		req = req.WithMessage(text)
	}
	var fileCleanups []func()
	defer func() {
		for _, cleanup := range fileCleanups {
			cleanup()
		}
	}()
	for _, fh := range fileHeaders {
		path, cleanup, ferr := saveMultipartFile(fh)
		if ferr != nil {
			sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read uploaded file: "+ferr.Error())
			return
		}
		fileCleanups = append(fileCleanups, cleanup)
		req = req.WithFile(path)
	}
	if password := c.PostForm("password"); password != "" {
		req = req.UsingPassword(password)
	}
	if stepStr := c.PostForm("color_step_increment"); stepStr != "" {
		step, convErr := strconv.Atoi(stepStr)
		if convErr != nil {
			sendError(c, http.StatusBadRequest, "INVALID_STEP", "color_step_increment must be an integer")
			return
		}
		req = req.WithColorStepIncrement(step)
	}

	if err := req.Execute(); err != nil {
		status, code := models.StatusFor(err)
		if code == "PROCESSING_ERROR" {
			code = "HIDE_FAILED"
		}
		sendError(c, status, code, err.Error())
		return
	}

	outData, err := os.ReadFile(outPath)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read hidden output")
		return
	}

	processingTime := int(time.Since(startTime).Milliseconds())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"stego%s\"", coverExt))
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.Data(http.StatusOK, "application/octet-stream", outData)
}

// SteganoUnveilHandler recovers a message previously hidden with
// SteganoHideHandler.
//
//	@Summary		Recover a hidden message
//	@Description	Extracts text and/or files previously hidden in a cover file. Returns a zip when files were recovered, JSON when only text was recovered.
//	@Tags			Stegano
//	@Accept			multipart/form-data
//	@Produce		json
//	@Produce		application/zip
//	@Param			cover		formData	file	true	"Cover file containing a hidden message"
//	@Param			password	formData	string	false	"Password, if the hidden message was encrypted"
//	@Success		200			{object}	map[string]string
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/stegano/unveil [post]
func (h *Handlers) SteganoUnveilHandler(c *gin.Context) {
	startTime := time.Now()

	coverPath, cleanupCover, err := writeUploadToTemp(c, "cover")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_COVER", "Cover file not provided")
		return
	}
	defer cleanupCover()

	outDir, err := os.MkdirTemp("", "stegano-unveil-*")
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to create output folder")
		return
	}
	defer os.RemoveAll(outDir)

	req := orchestrate.PrepareUnveil().FromSecretFile(coverPath).IntoOutputFolder(outDir)
	if password := c.PostForm("password"); password != "" {
		req = req.UsingPassword(password)
	}

	if err := req.Execute(); err != nil {
		status, code := models.StatusFor(err)
		if code == "PROCESSING_ERROR" {
			code = "UNVEIL_FAILED"
		}
		sendError(c, status, code, err.Error())
		return
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read recovered files")
		return
	}

	processingTime := int(time.Since(startTime).Milliseconds())
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))

	// A single recovered secret-message.txt with no other files is returned
	// as JSON text; anything else (one or more real files) is zipped up.
	if len(entries) == 1 && entries[0].Name() == "secret-message.txt" {
		data, rerr := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
		if rerr != nil {
			sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read recovered message")
			return
		}
		c.JSON(http.StatusOK, gin.H{"text": string(data)})
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, rerr := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if rerr != nil {
			sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read recovered file")
			return
		}
		w, werr := zw.Create(entry.Name())
		if werr != nil {
			sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to build result archive")
			return
		}
		if _, werr := w.Write(data); werr != nil {
			sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to build result archive")
			return
		}
	}
	if err := zw.Close(); err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to finalize result archive")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\"unveiled.zip\"")
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// SteganoUnveilRawHandler recovers the payload codec's decoded content
// verbatim, with no zip/text interpretation.
//
//	@Summary		Recover the raw decoded payload
//	@Description	Decodes the hidden payload's codec layer and returns the content bytes unchanged, bypassing message framing.
//	@Tags			Stegano
//	@Accept			multipart/form-data
//	@Produce		application/octet-stream
//	@Param			cover		formData	file	true	"Cover file containing a hidden message"
//	@Param			password	formData	string	false	"Password, if the hidden message was encrypted"
//	@Success		200			{file}		binary
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/stegano/unveil-raw [post]
func (h *Handlers) SteganoUnveilRawHandler(c *gin.Context) {
	startTime := time.Now()

	coverPath, cleanupCover, err := writeUploadToTemp(c, "cover")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_COVER", "Cover file not provided")
		return
	}
	defer cleanupCover()

	rawPath := coverPath + ".raw"
	defer os.Remove(rawPath)

	req := orchestrate.PrepareUnveilRaw().FromSecretFile(coverPath).IntoRawFile(rawPath)
	if password := c.PostForm("password"); password != "" {
		req = req.UsingPassword(password)
	}

	if err := req.Execute(); err != nil {
		status, code := models.StatusFor(err)
		if code == "PROCESSING_ERROR" {
			code = "UNVEIL_FAILED"
		}
		sendError(c, status, code, err.Error())
		return
	}

	rawData, err := os.ReadFile(rawPath)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read raw output")
		return
	}

	processingTime := int(time.Since(startTime).Milliseconds())
	c.Header("Content-Disposition", "attachment; filename=\"raw.bin\"")
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.Data(http.StatusOK, "application/octet-stream", rawData)
}

// saveMultipartFile copies one uploaded file to a temp path on disk and
// returns a cleanup func.
func saveMultipartFile(fh *multipart.FileHeader) (string, func(), error) {
	file, err := fh.Open()
	if err != nil {
		return "", func() {}, err
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "stegano-file-*-"+sanitizeFileName(fh.Filename))
	if err != nil {
		return "", func() {}, err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", func() {}, err
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

func sanitizeFileName(name string) string {
	return filepath.Base(name)
}
