package resumesrv

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/fsx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/application"
	"github.com/Abraxas-365/cvrelay/recruitment/candidate"
	"github.com/Abraxas-365/cvrelay/recruitment/job"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/Abraxas-365/cvrelay/recruitment/skill"
	"github.com/Abraxas-365/cvrelay/recruitment/skill/skillinfra"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return fixedNow })
}

func testCatalog() *skillinfra.MemoryCatalog {
	return skillinfra.NewMemoryCatalog(
		skill.Skill{ID: "sk-teamwork", Name: "Trabajo en equipo", Active: true},
		skill.Skill{ID: "sk-excel", Name: "Excel Avanzado", Active: true},
		skill.Skill{ID: "sk-sales", Name: "Ventas", Active: true},
	)
}

// ============================================================================
// Profiles
// ============================================================================

type eduRow struct {
	candidateID kernel.CandidateID
	rec         resume.EducationRecord
}

type expRow struct {
	candidateID kernel.CandidateID
	rec         resume.ExperienceRecord
}

type skillRow struct {
	candidateID kernel.CandidateID
	tag         skill.Tag
}

// memoryProfiles stages writes per transaction and enforces the uniqueness
// constraints on commit, like the database does.
type memoryProfiles struct {
	mu          sync.Mutex
	educations  []eduRow
	experiences []expRow
	skills      []skillRow
	saveErr     error
	hasAnyErr   error
}

type memoryTx struct {
	repo        *memoryProfiles
	educations  []eduRow
	experiences []expRow
	skills      []skillRow
}

func (m *memoryProfiles) WithinTx(ctx context.Context, fn func(ctx context.Context, store resume.ProfileStore) error) error {
	tx := &memoryTx{repo: m}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return m.commit(tx)
}

func (m *memoryProfiles) commit(tx *memoryTx) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range tx.educations {
		if m.hasEducation(r.candidateID, r.rec.Key(), nil) {
			return resume.ErrDuplicateRecord()
		}
	}
	for _, r := range tx.experiences {
		if m.hasExperience(r.candidateID, experienceKey(r.rec), nil) {
			return resume.ErrDuplicateRecord()
		}
	}
	for _, r := range tx.skills {
		if m.hasSkill(r.candidateID, r.tag.SkillID, nil) {
			return resume.ErrDuplicateRecord()
		}
	}

	m.educations = append(m.educations, tx.educations...)
	m.experiences = append(m.experiences, tx.experiences...)
	m.skills = append(m.skills, tx.skills...)
	return nil
}

func (m *memoryProfiles) hasEducation(id kernel.CandidateID, key resume.EducationKey, staged []eduRow) bool {
	for _, r := range append(append([]eduRow{}, m.educations...), staged...) {
		if r.candidateID == id && sameEducation(r.rec.Key(), key) {
			return true
		}
	}
	return false
}

func (m *memoryProfiles) hasExperience(id kernel.CandidateID, key resume.ExperienceKey, staged []expRow) bool {
	for _, r := range append(append([]expRow{}, m.experiences...), staged...) {
		k := experienceKey(r.rec)
		if r.candidateID == id && k.Employer == key.Employer && k.Role == key.Role && k.StartDate.Equal(key.StartDate) {
			return true
		}
	}
	return false
}

func (m *memoryProfiles) hasSkill(id kernel.CandidateID, skillID kernel.SkillID, staged []skillRow) bool {
	for _, r := range append(append([]skillRow{}, m.skills...), staged...) {
		if r.candidateID == id && r.tag.SkillID == skillID {
			return true
		}
	}
	return false
}

func (m *memoryProfiles) counts(id kernel.CandidateID) (educations, experiences, skills int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.educations {
		if r.candidateID == id {
			educations++
		}
	}
	for _, r := range m.experiences {
		if r.candidateID == id {
			experiences++
		}
	}
	for _, r := range m.skills {
		if r.candidateID == id {
			skills++
		}
	}
	return
}

func sameEducation(a, b resume.EducationKey) bool {
	if a.Institution != b.Institution || a.Level != b.Level || a.Status != b.Status {
		return false
	}
	if a.Program == nil || b.Program == nil {
		return a.Program == nil && b.Program == nil
	}
	return *a.Program == *b.Program
}

func experienceKey(rec resume.ExperienceRecord) resume.ExperienceKey {
	k := resume.ExperienceKey{Employer: rec.Employer, Role: rec.Role}
	if rec.StartDate != nil {
		k.StartDate = *rec.StartDate
	}
	return k
}

func (tx *memoryTx) HasAnyRecord(ctx context.Context, id kernel.CandidateID) (bool, error) {
	m := tx.repo
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hasAnyErr != nil {
		return false, m.hasAnyErr
	}
	for _, r := range m.educations {
		if r.candidateID == id {
			return true, nil
		}
	}
	for _, r := range m.experiences {
		if r.candidateID == id {
			return true, nil
		}
	}
	for _, r := range m.skills {
		if r.candidateID == id {
			return true, nil
		}
	}
	return false, nil
}

func (tx *memoryTx) EducationExists(ctx context.Context, id kernel.CandidateID, key resume.EducationKey) (bool, error) {
	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()
	return tx.repo.hasEducation(id, key, tx.educations), nil
}

func (tx *memoryTx) SaveEducation(ctx context.Context, id kernel.CandidateID, rec resume.EducationRecord, createdAt time.Time) error {
	if err := tx.repo.saveErr; err != nil {
		return err
	}
	tx.educations = append(tx.educations, eduRow{candidateID: id, rec: rec})
	return nil
}

func (tx *memoryTx) ExperienceExists(ctx context.Context, id kernel.CandidateID, key resume.ExperienceKey) (bool, error) {
	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()
	return tx.repo.hasExperience(id, key, tx.experiences), nil
}

func (tx *memoryTx) SaveExperience(ctx context.Context, id kernel.CandidateID, rec resume.ExperienceRecord, createdAt time.Time) error {
	if err := tx.repo.saveErr; err != nil {
		return err
	}
	tx.experiences = append(tx.experiences, expRow{candidateID: id, rec: rec})
	return nil
}

func (tx *memoryTx) SkillLinkExists(ctx context.Context, id kernel.CandidateID, skillID kernel.SkillID) (bool, error) {
	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()
	return tx.repo.hasSkill(id, skillID, tx.skills), nil
}

func (tx *memoryTx) SaveSkillLink(ctx context.Context, id kernel.CandidateID, tag skill.Tag, registeredAt time.Time) error {
	if err := tx.repo.saveErr; err != nil {
		return err
	}
	tx.skills = append(tx.skills, skillRow{candidateID: id, tag: tag})
	return nil
}

// ============================================================================
// Documents, candidates, vacancies
// ============================================================================

type memoryDocuments struct {
	mu        sync.Mutex
	docs      map[kernel.CandidateID][]*resume.SourceDocument
	processed map[kernel.DocumentID]time.Time
	getErr    map[kernel.CandidateID]error
	createErr error
}

func newMemoryDocuments() *memoryDocuments {
	return &memoryDocuments{
		docs:      make(map[kernel.CandidateID][]*resume.SourceDocument),
		processed: make(map[kernel.DocumentID]time.Time),
		getErr:    make(map[kernel.CandidateID]error),
	}
}

func (d *memoryDocuments) GetLatestByCandidate(ctx context.Context, id kernel.CandidateID) (*resume.SourceDocument, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.getErr[id]; err != nil {
		return nil, err
	}
	docs := d.docs[id]
	if len(docs) == 0 {
		return nil, resume.ErrSourceDocumentNotFound().WithDetail("candidate_id", id)
	}
	return docs[len(docs)-1], nil
}

func (d *memoryDocuments) Create(ctx context.Context, doc *resume.SourceDocument) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.createErr != nil {
		return d.createErr
	}
	d.docs[doc.CandidateID] = append(d.docs[doc.CandidateID], doc)
	return nil
}

func (d *memoryDocuments) MarkProcessed(ctx context.Context, id kernel.DocumentID, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.processed[id] = at
	return nil
}

type memoryCandidates map[kernel.CandidateID]*candidate.Candidate

func (m memoryCandidates) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	c, ok := m[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
	}
	return c, nil
}

type memoryJobs map[kernel.JobID]*job.Job

func (m memoryJobs) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	j, ok := m[id]
	if !ok {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id)
	}
	return j, nil
}

type memoryApplications []*application.Application

func (m memoryApplications) ListAwaitingResumeReview(ctx context.Context, jobID kernel.JobID) ([]*application.Application, error) {
	var out []*application.Application
	for _, a := range m {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ============================================================================
// Extraction and queue
// ============================================================================

type mapLocator map[string][]byte

func (m mapLocator) Locate(ctx context.Context, ref resume.DocumentRef) (*resume.LocatedDocument, error) {
	data, ok := m[ref.Path]
	if !ok {
		return nil, resume.ErrDocumentNotFound().WithDetail("path", ref.Path)
	}
	return &resume.LocatedDocument{Data: data, Name: ref.FileName, Location: ref.Path}, nil
}

func (m mapLocator) ReadFile(ctx context.Context, p string) ([]byte, error) {
	data, ok := m[p]
	if !ok {
		return nil, fsx.ErrFileNotFound(p)
	}
	return data, nil
}

func (m mapLocator) Exists(ctx context.Context, p string) (bool, error) {
	_, ok := m[p]
	return ok, nil
}

func (m mapLocator) WriteFile(ctx context.Context, p string, data []byte) error {
	m[p] = data
	return nil
}

func (m mapLocator) DeleteFile(ctx context.Context, p string) error {
	delete(m, p)
	return nil
}

func (m mapLocator) Join(elem ...string) string {
	return path.Join(elem...)
}

// brokenStore fails every write.
type brokenStore struct{ mapLocator }

func (brokenStore) WriteFile(ctx context.Context, p string, data []byte) error {
	return fsx.ErrWriteFailed(p, errors.New("disk full"))
}

type textRenderer struct {
	text string
	err  error
}

func (r textRenderer) RenderText(ctx context.Context, data []byte) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.text != "" {
		return r.text, nil
	}
	return string(data), nil
}

type delayedJob struct {
	job   *resume.ProcessingJob
	delay time.Duration
}

type memoryQueue struct {
	mu      sync.Mutex
	ready   []*resume.ProcessingJob
	delayed []delayedJob
	err     error
}

func (q *memoryQueue) Enqueue(ctx context.Context, id kernel.QueueJobID, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.ready = append(q.ready, payload.(*resume.ProcessingJob))
	return nil
}

func (q *memoryQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	return nil, nil
}

func (q *memoryQueue) EnqueueDelayed(ctx context.Context, id kernel.QueueJobID, payload any, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	j := *payload.(*resume.ProcessingJob)
	q.delayed = append(q.delayed, delayedJob{job: &j, delay: delay})
	return nil
}

func (q *memoryQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	return 0, nil
}

// ============================================================================
// Wiring
// ============================================================================

type fixture struct {
	svc          *Service
	profiles     *memoryProfiles
	documents    *memoryDocuments
	candidates   memoryCandidates
	jobs         memoryJobs
	applications memoryApplications
	queue        *memoryQueue
	files        mapLocator
}

func newFixture(apps ...*application.Application) *fixture {
	f := &fixture{
		profiles:     &memoryProfiles{},
		documents:    newMemoryDocuments(),
		candidates:   memoryCandidates{},
		jobs:         memoryJobs{"job-1": {ID: "job-1", Title: "Analista", Status: job.JobStatusPublished}},
		applications: memoryApplications(apps),
		queue:        &memoryQueue{},
		files:        mapLocator{},
	}

	extractor := NewExtractor(f.files, nil, map[string]resume.TextRenderer{"txt": textRenderer{}})
	assembler := NewAssembler(skill.NewNormalizer(testCatalog(), nil))
	registrar := NewRegistrar(f.profiles, NewLocalLocker(), fixedClock())

	cfg := DefaultConfig()
	cfg.DocumentPrefix = "docs/cv"
	f.svc = NewService(f.documents, f.candidates, f.jobs, f.applications, extractor, assembler, registrar, f.queue, f.files, fixedClock(), cfg)
	return f
}

func (f *fixture) addCandidate(id kernel.CandidateID, first, last string) {
	f.candidates[id] = &candidate.Candidate{ID: id, FirstName: first, LastName: last, Status: candidate.CandidateStatusActive}
}

func (f *fixture) addInlineDocument(id kernel.CandidateID, content string) *resume.SourceDocument {
	doc := &resume.SourceDocument{
		ID:          kernel.NewDocumentID("doc-" + id.String()),
		CandidateID: id,
		FileName:    "cv.json",
		Inline:      []byte(content),
		Status:      resume.DocumentStatusPending,
	}
	_ = f.documents.Create(context.Background(), doc)
	return doc
}

func reviewApplication(jobID kernel.JobID, candidateID kernel.CandidateID) *application.Application {
	return &application.Application{
		ID:          kernel.NewApplicationID("app-" + candidateID.String()),
		JobID:       jobID,
		CandidateID: candidateID,
		Stage:       application.ApplicationStageResumeReview,
		Status:      application.ApplicationStatusUnderReview,
	}
}
