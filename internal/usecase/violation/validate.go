package usecase

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/loopwear/loopwear-violation-service/internal/domain"
	violationdto "github.com/loopwear/loopwear-violation-service/internal/usecase/dto/violation"
)

const (
	minDescriptionLen = 10
	maxDescriptionLen = 2000

	maxImageBytes = 10 << 20  // 10 MB
	maxVideoBytes = 100 << 20 // 100 MB
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
}

// EvidenceMediaKind classifies a file by extension. Returns
// ErrInvalidEvidence for anything outside the whitelist.
func EvidenceMediaKind(fileName string) (domain.MediaKind, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch {
	case imageExtensions[ext]:
		return domain.MediaImage, nil
	case videoExtensions[ext]:
		return domain.MediaVideo, nil
	default:
		return "", fmt.Errorf("%w: unsupported extension %q", domain.ErrInvalidEvidence, ext)
	}
}

func validateEvidenceFile(file violationdto.EvidenceFileInput) (domain.MediaKind, error) {
	kind, err := EvidenceMediaKind(file.FileName)
	if err != nil {
		return "", err
	}
	if file.SizeBytes <= 0 {
		return "", fmt.Errorf("%w: empty file %q", domain.ErrInvalidEvidence, file.FileName)
	}
	switch kind {
	case domain.MediaImage:
		if file.SizeBytes > maxImageBytes {
			return "", fmt.Errorf("%w: image %q exceeds 10MB", domain.ErrInvalidEvidence, file.FileName)
		}
	case domain.MediaVideo:
		if file.SizeBytes > maxVideoBytes {
			return "", fmt.Errorf("%w: video %q exceeds 100MB", domain.ErrInvalidEvidence, file.FileName)
		}
	}
	return kind, nil
}

func validateEvidenceFiles(files []violationdto.EvidenceFileInput) error {
	for _, file := range files {
		if _, err := validateEvidenceFile(file); err != nil {
			return err
		}
	}
	return nil
}

func validateDescription(description string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(description))
	if length < minDescriptionLen || length > maxDescriptionLen {
		return fmt.Errorf("description must be %d-%d characters, got %d", minDescriptionLen, maxDescriptionLen, length)
	}
	return nil
}

func validatePercent(name string, value float64) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%s must be within 0-100, got %.2f", name, value)
	}
	return nil
}
