// Package complaint provides the core logic for handling traffic-violation
// complaints: intake normalization, media handling, the status lifecycle
// and listing.
package complaint

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"roadwatch/backend/internal/models"
	"roadwatch/backend/internal/storage"
)

// Intake and lifecycle errors surfaced to the HTTP layer.
var (
	ErrVehicleNoRequired = errors.New("vehicle number is required")
	ErrInvalidStatus     = errors.New("invalid status")
)

// Display formats used for stored dates and times.
const (
	dateInputFormat   = "2006-01-02"
	dateDisplayFormat = "02-01-2006"
	timeDisplayFormat = "15:04"
)

// Notifier receives a best-effort signal after a complaint is persisted.
type Notifier interface {
	ComplaintRegistered(c *models.Complaint) error
}

// Submission carries the raw form fields of one complaint, before
// normalization. Everything is optional except VehicleNo.
type Submission struct {
	VehicleNo     string
	ViolationType string
	Location      string
	Latitude      string
	Longitude     string
	Date          string
	Time          string
	State         string
	Comment       string
}

// Service handles the business logic for complaints.
type Service struct {
	Storage storage.Storage

	// MediaDir is where uploaded files land on disk; MediaPublicPrefix is
	// the path recorded on complaints, relative to the static asset root.
	MediaDir          string
	MediaPublicPrefix string

	// Notifier is optional; nil disables notifications.
	Notifier Notifier
}

// NewService creates a new complaint service.
func NewService(s storage.Storage, mediaDir, mediaPublicPrefix string, n Notifier) *Service {
	return &Service{
		Storage:           s,
		MediaDir:          mediaDir,
		MediaPublicPrefix: mediaPublicPrefix,
		Notifier:          n,
	}
}

// Submit validates and normalizes one submission, saves the attached media
// if any, and persists exactly one complaint row with status open.
// A media save failure is downgraded to a warning: the complaint is still
// recorded, just without a file path.
func (s *Service) Submit(sub Submission, media *multipart.FileHeader) (*models.Complaint, error) {
	if strings.TrimSpace(sub.VehicleNo) == "" {
		return nil, ErrVehicleNoRequired
	}

	date, timeOfDay := normalizeDateTime(sub.Date, sub.Time)
	lat, lon := parseCoordinates(sub.Latitude, sub.Longitude)

	complaint := &models.Complaint{
		VehicleNo:     sub.VehicleNo,
		ViolationType: sub.ViolationType,
		Location:      sub.Location,
		Latitude:      lat,
		Longitude:     lon,
		Date:          date,
		Time:          timeOfDay,
		State:         sub.State,
		Comment:       sub.Comment,
		Status:        models.StatusOpen,
	}

	// The hook in BeforeCreate would also fill this in, but the ID is
	// needed up front to name the media file.
	if err := complaint.BeforeCreate(nil); err != nil {
		return nil, err
	}

	if media != nil && media.Filename != "" {
		if path, err := s.saveMedia(complaint.ComplaintID, media); err != nil {
			log.Printf("WARNING: Failed to save media for complaint %s: %v", complaint.ComplaintID, err)
		} else if path != "" {
			complaint.FilePath = &path
		}
	}

	if err := s.Storage.SaveComplaint(complaint); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if err := s.Notifier.ComplaintRegistered(complaint); err != nil {
			log.Printf("WARNING: Failed to notify about complaint %s: %v", complaint.ComplaintID, err)
		}
	}

	return complaint, nil
}

// UpdateStatus moves a complaint to a new lifecycle status. The status is
// matched case-insensitively and stored lowercased; the applied value is
// returned.
func (s *Service) UpdateStatus(complaintID, newStatus string) (string, error) {
	status, ok := models.NormalizeStatus(newStatus)
	if !ok {
		return "", ErrInvalidStatus
	}

	if err := s.Storage.UpdateComplaintStatus(complaintID, status); err != nil {
		return "", err
	}

	log.Printf("INFO: Complaint %s status updated to %s", complaintID, status)
	return status, nil
}

// List returns every complaint, newest first.
func (s *Service) List() ([]models.Complaint, error) {
	return s.Storage.GetAllComplaints()
}

// normalizeDateTime applies the intake date rules: a parseable YYYY-MM-DD
// date is reformatted to DD-MM-YYYY, an unparsable one is kept verbatim,
// and if either the date or the time is missing both are replaced with the
// server's current date and time.
func normalizeDateTime(dateInput, timeInput string) (date, timeOfDay string) {
	if dateInput != "" {
		parsed, err := time.Parse(dateInputFormat, dateInput)
		if err != nil {
			log.Printf("WARNING: Received unexpected date format: %s", dateInput)
			date = dateInput
		} else {
			date = parsed.Format(dateDisplayFormat)
		}
	}
	timeOfDay = timeInput

	if date == "" || timeOfDay == "" {
		now := time.Now()
		date = now.Format(dateDisplayFormat)
		timeOfDay = now.Format(timeDisplayFormat)
	}
	return date, timeOfDay
}

// parseCoordinates parses the latitude/longitude pair. If either value is
// present but unparsable, both are dropped so a partial pair is never
// stored.
func parseCoordinates(latInput, lonInput string) (lat, lon *float64) {
	if latInput != "" {
		v, err := strconv.ParseFloat(latInput, 64)
		if err != nil {
			log.Printf("WARNING: Invalid latitude %q, storing coordinates as absent", latInput)
			return nil, nil
		}
		lat = &v
	}
	if lonInput != "" {
		v, err := strconv.ParseFloat(lonInput, 64)
		if err != nil {
			log.Printf("WARNING: Invalid longitude %q, storing coordinates as absent", lonInput)
			return nil, nil
		}
		lon = &v
	}
	return lat, lon
}

// saveMedia stores the uploaded file under MediaDir as
// <complaintID><original extension> and returns the public path to record
// on the complaint. An unusable original filename yields "" without error.
func (s *Service) saveMedia(complaintID string, media *multipart.FileHeader) (string, error) {
	original := sanitizeFilename(media.Filename)
	if original == "" {
		return "", nil
	}

	filename := complaintID + filepath.Ext(original)
	dest := filepath.Join(s.MediaDir, filename)

	src, err := media.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dest)
		return "", err
	}

	log.Printf("INFO: Media saved for complaint %s: %s", complaintID, dest)
	return path.Join(s.MediaPublicPrefix, filename), nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// sanitizeFilename strips any path components and replaces characters that
// are unsafe in a filename. Returns "" when nothing usable remains.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	if name == "" {
		return ""
	}
	return name
}
