package mediastore

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var versionSegment = regexp.MustCompile(`^v\d+$`)

// CloudinaryStore görselleri Cloudinary'ye yükler.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore hesap bilgileriyle yeni bir CloudinaryStore oluşturur.
func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary bilgileri eksik")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary istemcisi oluşturulamadı: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

// Save dosyayı yapılandırılan klasöre yükler ve secure_url döner.
func (s *CloudinaryStore) Save(ctx context.Context, _ string, r io.Reader) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary yükleme hatası: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary yükleme hatası: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

// Delete URL'den public id'yi çıkarıp nesneyi siler. "not found" başarı sayılır.
func (s *CloudinaryStore) Delete(ctx context.Context, ref string) error {
	if !s.Owns(ref) {
		return ErrNotOwned
	}
	publicID := PublicIDFromURL(ref)
	if publicID == "" {
		return ErrInvalidName
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary silme hatası (%s): %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary silme hatası (%s): %s", publicID, res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary silme sonucu beklenmedik (%s): %s", publicID, res.Result)
	}
	return nil
}

// Owns sadece cloudinary.com adreslerini sahiplenir.
func (s *CloudinaryStore) Owns(ref string) bool {
	return strings.Contains(ref, "cloudinary.com")
}

// PublicIDFromURL teslim URL'inden public id üretir:
// .../image/upload/v123/undangan/abc.jpg -> undangan/abc
func PublicIDFromURL(ref string) string {
	ref = strings.SplitN(ref, "?", 2)[0]

	var segments []string
	if i := strings.Index(ref, "/upload/"); i >= 0 {
		segments = strings.Split(ref[i+len("/upload/"):], "/")
		if len(segments) > 1 && versionSegment.MatchString(segments[0]) {
			segments = segments[1:]
		}
	} else {
		all := strings.Split(ref, "/")
		if len(all) < 2 {
			return ""
		}
		segments = all[len(all)-2:]
	}

	joined := strings.Join(segments, "/")
	joined = strings.TrimSuffix(joined, path.Ext(joined))
	return strings.Trim(joined, "/")
}

var _ Store = (*CloudinaryStore)(nil)
