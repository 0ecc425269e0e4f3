package resumesrv

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

type jsonSource struct {
	Formation   []resume.Node `json:"formacion"`
	Experiences []resume.Node `json:"experiencias"`
	Skills      []any         `json:"habilidades"`
}

// ReadJSON decodes the structured resume schema. Every field is optional;
// null entries are dropped and absent arrays come back empty.
func ReadJSON(data []byte) (resume.ExternalProfile, error) {
	profile := resume.EmptyProfile()

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return profile, nil
	}

	var src jsonSource
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&src); err != nil {
		return profile, resume.ErrInvalidJSON().WithCause(err)
	}

	for _, n := range src.Formation {
		if n != nil {
			profile.Formation = append(profile.Formation, n)
		}
	}
	for _, n := range src.Experiences {
		if n != nil {
			profile.Experiences = append(profile.Experiences, n)
		}
	}
	for _, v := range src.Skills {
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case json.Number:
			s = t.String()
		default:
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			profile.Skills = append(profile.Skills, s)
		}
	}

	return profile, nil
}
