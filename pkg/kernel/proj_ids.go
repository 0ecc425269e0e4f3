package kernel

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (r CandidateID) String() string       { return string(r) }
func (r CandidateID) IsEmpty() bool        { return string(r) == "" }

// JobID identifies a vacancy.
type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

// DocumentID identifies a stored resume source document.
type DocumentID string

func NewDocumentID(id string) DocumentID { return DocumentID(id) }
func (r DocumentID) String() string      { return string(r) }
func (r DocumentID) IsEmpty() bool       { return string(r) == "" }

type SkillID string

func NewSkillID(id string) SkillID { return SkillID(id) }
func (r SkillID) String() string   { return string(r) }
func (r SkillID) IsEmpty() bool    { return string(r) == "" }

// QueueJobID identifies an asynchronous processing job.
type QueueJobID string

func NewQueueJobID(id string) QueueJobID { return QueueJobID(id) }
func (r QueueJobID) String() string      { return string(r) }
func (r QueueJobID) IsEmpty() bool       { return string(r) == "" }
