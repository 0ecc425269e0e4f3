package auth

// ============================================================================
// Resume processing scopes
// ============================================================================

const (
	ScopeResumesAll     = "resumes:*"
	ScopeResumesProcess = "resumes:process" // Run registration for candidates
	ScopeResumesPreview = "resumes:preview"
	ScopeResumesReport  = "resumes:report"

	ScopeCandidatesAll   = "candidates:*"
	ScopeCandidatesRead  = "candidates:read"
	ScopeCandidatesWrite = "candidates:write" // Link source documents

	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsReview = "applications:review"

	ScopeAll = "*"
)

var ScopeDescriptions = map[string]string{
	ScopeResumesAll:         "Full access to resume processing",
	ScopeResumesProcess:     "Register resume contents into candidate profiles",
	ScopeResumesPreview:     "Parse uploaded resumes without saving",
	ScopeResumesReport:      "Download processing reports",
	ScopeCandidatesAll:      "Full access to candidate management",
	ScopeCandidatesRead:     "View candidates",
	ScopeCandidatesWrite:    "Create and edit candidates",
	ScopeApplicationsAll:    "Full access to application management",
	ScopeApplicationsReview: "Review and evaluate applications",
	ScopeAll:                "Unrestricted access",
}

// ScopeGroups expands a role name into its scopes.
var ScopeGroups = map[string][]string{
	"recruiter": {
		ScopeResumesAll,
		ScopeCandidatesAll,
		ScopeApplicationsReview,
	},
	"hiring_manager": {
		ScopeResumesPreview,
		ScopeResumesReport,
		ScopeCandidatesRead,
		ScopeApplicationsReview,
	},
	"processor": {
		ScopeResumesProcess,
		ScopeCandidatesRead,
	},
}

// ExpandScopes replaces role names with their scopes and keeps everything
// else as given. Duplicates are dropped.
func ExpandScopes(scopes []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range scopes {
		if group, ok := ScopeGroups[s]; ok {
			for _, g := range group {
				add(g)
			}
			continue
		}
		add(s)
	}
	return out
}

// HasScope reports whether granted covers required, honouring "*" and
// "<resource>:*" wildcards.
func HasScope(granted []string, required string) bool {
	resource := required
	for i := 0; i < len(required); i++ {
		if required[i] == ':' {
			resource = required[:i]
			break
		}
	}
	for _, s := range granted {
		if s == required || s == ScopeAll || s == resource+":*" {
			return true
		}
	}
	return false
}
