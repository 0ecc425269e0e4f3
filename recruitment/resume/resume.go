package resume

import (
	"encoding/json"
	"path"
	"strings"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/skill"
)

// ============================================================================
// Source documents
// ============================================================================

type DocumentStatus string

const (
	DocumentStatusPending   DocumentStatus = "PENDING"
	DocumentStatusProcessed DocumentStatus = "PROCESSED"
)

// DocumentSourceUpload marks documents whose bytes were uploaded through the
// API rather than linked from elsewhere.
const DocumentSourceUpload = "UPLOAD"

// SourceDocument is the stored reference to a candidate's resume. It is
// never edited in place: linking a new file creates a new document.
type SourceDocument struct {
	ID          kernel.DocumentID  `db:"id" json:"id"`
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	FileName    string             `db:"file_name" json:"file_name"`
	FilePath    string             `db:"file_path" json:"file_path"`
	FileType    string             `db:"file_type" json:"file_type"`
	SizeBytes   int64              `db:"size_bytes" json:"size_bytes"`
	Source      string             `db:"source" json:"source"`
	SourceURL   string             `db:"source_url" json:"source_url,omitempty"`
	Inline      json.RawMessage    `db:"inline_content" json:"inline_content,omitempty"`
	Status      DocumentStatus     `db:"status" json:"status"`
	UploadedAt  time.Time          `db:"uploaded_at" json:"uploaded_at"`
	ProcessedAt *time.Time         `db:"processed_at" json:"processed_at,omitempty"`
}

// DispatchName is the lower-cased file name used to pick a reader. It falls
// back to the last segment of the stored path.
func (d *SourceDocument) DispatchName() string {
	name := d.FileName
	if strings.TrimSpace(name) == "" {
		name = path.Base(strings.ReplaceAll(d.FilePath, "\\", "/"))
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func (d *SourceDocument) HasInlineContent() bool {
	return len(strings.TrimSpace(string(d.Inline))) > 0
}

// ============================================================================
// Raw extraction output
// ============================================================================

// ExternalProfile is what a reader produced before normalization. None of
// its slices is nil.
type ExternalProfile struct {
	Formation   []Node   `json:"formacion"`
	Experiences []Node   `json:"experiencias"`
	Skills      []string `json:"habilidades"`
}

func EmptyProfile() ExternalProfile {
	return ExternalProfile{
		Formation:   []Node{},
		Experiences: []Node{},
		Skills:      []string{},
	}
}

func (p ExternalProfile) IsEmpty() bool {
	return len(p.Formation) == 0 && len(p.Experiences) == 0 && len(p.Skills) == 0
}

// ============================================================================
// Normalized profile
// ============================================================================

type EducationLevel string

const (
	EducationLevelTechnical    EducationLevel = "TECHNICAL"
	EducationLevelHighSchool   EducationLevel = "HIGH_SCHOOL"
	EducationLevelBachelor     EducationLevel = "BACHELOR"
	EducationLevelMaster       EducationLevel = "MASTER"
	EducationLevelDoctorate    EducationLevel = "DOCTORATE"
	EducationLevelUniversity   EducationLevel = "UNIVERSITY"
	EducationLevelNotSpecified EducationLevel = "NOT_SPECIFIED"
)

type EducationStatus string

const (
	EducationStatusInProgress EducationStatus = "IN_PROGRESS"
	EducationStatusCompleted  EducationStatus = "COMPLETED"
)

const (
	DefaultInstitution = "Institution not identified"
	DefaultEmployer    = "Employer not indicated"
	DefaultRole        = "Role not indicated"
)

type EducationRecord struct {
	Institution string          `json:"institution"`
	Program     *string         `json:"program,omitempty"`
	Level       EducationLevel  `json:"level"`
	Status      EducationStatus `json:"status"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Courses     string          `json:"courses"`
	Remarks     *string         `json:"remarks,omitempty"`
}

type ExperienceRecord struct {
	Employer         string     `json:"employer"`
	Role             string     `json:"role"`
	Responsibilities string     `json:"responsibilities"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	ReferenceContact *string    `json:"reference_contact,omitempty"`
	ReferencePhone   *string    `json:"reference_phone,omitempty"`
}

// NormalizedProfile is the assembled extraction result handed to
// registration. Build it with NewNormalizedProfile.
type NormalizedProfile struct {
	Educations  []EducationRecord  `json:"educations"`
	Experiences []ExperienceRecord `json:"experiences"`
	Skills      []skill.Tag        `json:"skills"`
}

// NewNormalizedProfile copies its inputs so the profile shares no backing
// arrays with the caller. Nil inputs become empty slices.
func NewNormalizedProfile(educations []EducationRecord, experiences []ExperienceRecord, skills []skill.Tag) NormalizedProfile {
	return NormalizedProfile{
		Educations:  append(make([]EducationRecord, 0, len(educations)), educations...),
		Experiences: append(make([]ExperienceRecord, 0, len(experiences)), experiences...),
		Skills:      append(make([]skill.Tag, 0, len(skills)), skills...),
	}
}

func (p NormalizedProfile) IsEmpty() bool {
	return len(p.Educations) == 0 && len(p.Experiences) == 0 && len(p.Skills) == 0
}

// ============================================================================
// Uniqueness keys
// ============================================================================

// EducationKey identifies an education record of one candidate.
type EducationKey struct {
	Institution string
	Program     *string
	Level       EducationLevel
	Status      EducationStatus
}

func (r EducationRecord) Key() EducationKey {
	return EducationKey{
		Institution: r.Institution,
		Program:     r.Program,
		Level:       r.Level,
		Status:      r.Status,
	}
}

// ExperienceKey identifies an experience record of one candidate.
type ExperienceKey struct {
	Employer  string
	Role      string
	StartDate time.Time
}
