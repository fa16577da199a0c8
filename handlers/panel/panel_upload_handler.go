package handlers

import (
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/pkg/mediastore"
	"undangan.link/pkg/renderer"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// servedTypes yerel dosyaların satır içi sunulabildiği türler; kalanı indirme olarak gider.
var servedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// UploadHandler medya yükleme ve yerel dosya sunumu.
type UploadHandler struct {
	store mediastore.Store
	local *mediastore.LocalStore // nil ise yerel sunum kapalı
}

func NewUploadHandler(store mediastore.Store, local *mediastore.LocalStore) *UploadHandler {
	return &UploadHandler{store: store, local: local}
}

// Upload POST /api/uploads (multipart "file"). Her çağrı yeni bir referans üretir.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return renderer.BadRequest(c, "No file uploaded.")
	}

	f, err := fh.Open()
	if err != nil {
		configslog.Log.Error("Yüklenen dosya açılamadı", zap.String("filename", fh.Filename), zap.Error(err))
		return renderer.Error(c, err)
	}
	defer f.Close()

	ref, err := h.store.Save(c.UserContext(), fh.Filename, f)
	if err != nil {
		configslog.Log.Error("Dosya kaydedilemedi", zap.String("filename", fh.Filename), zap.Int64("size", fh.Size), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "File upload failed.",
		})
	}

	configslog.SLog.Infof("Dosya yüklendi: %s (%d byte)", ref, fh.Size)
	return renderer.Success(c, fiber.StatusOK, fiber.Map{
		"url":     ref,
		"message": "File uploaded successfully!",
	})
}

// Serve GET /api/uploads/:filename
func (h *UploadHandler) Serve(c *fiber.Ctx) error {
	if h.local == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "File not found"})
	}

	path, err := h.local.Path(c.Params("filename"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid filename"})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "File not found"})
		}
		configslog.Log.Error("Dosya okunamadı", zap.String("path", path), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
	}

	contentType, disposition := serveHeaders(filepath.Ext(path), data)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType(disposition, map[string]string{"filename": filepath.Base(path)}))
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.Send(data)
}

// serveHeaders uzantı listede varsa ve içerik o türle eşleşiyorsa satır içi sunar.
func serveHeaders(ext string, data []byte) (contentType, disposition string) {
	want, ok := servedTypes[strings.ToLower(ext)]
	if ok && mimetype.Detect(data).Is(want) {
		return want, "inline"
	}
	return fiber.MIMEOctetStream, "attachment"
}
