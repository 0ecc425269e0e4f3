package skillinfra

import (
	"os"

	"github.com/Abraxas-365/cvrelay/recruitment/skill"
	"gopkg.in/yaml.v3"
)

type synonymFile struct {
	Rules []skill.SynonymRule `yaml:"rules"`
}

// ParseSynonymRules reads rules from YAML of the form
//
//	rules:
//	  - canonical: Microsoft Office
//	    when:
//	      - [microsoft office]
//	      - [excel, word]
func ParseSynonymRules(data []byte) ([]skill.SynonymRule, error) {
	var f synonymFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, skill.ErrInvalidSynonymRules().WithCause(err)
	}
	for i, r := range f.Rules {
		if r.Canonical == "" || len(r.When) == 0 {
			return nil, skill.ErrInvalidSynonymRules().
				WithDetail("index", i).
				WithDetail("reason", "rule needs canonical and at least one trigger group")
		}
	}
	return f.Rules, nil
}

func LoadSynonymRules(path string) ([]skill.SynonymRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, skill.ErrInvalidSynonymRules().WithCause(err).WithDetail("path", path)
	}
	return ParseSynonymRules(data)
}
