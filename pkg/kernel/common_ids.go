package kernel

import "github.com/google/uuid"

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

// RecordID identifies a persisted profile row (education, experience or skill link).
type RecordID string

func NewRecordID() RecordID       { return RecordID(uuid.NewString()) }
func (r RecordID) String() string { return string(r) }
func (r RecordID) IsEmpty() bool  { return string(r) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }
