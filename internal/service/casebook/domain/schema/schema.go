// Package schema maps the logical fields each page section reads to the
// field names used in the remote case tables.
package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scarevision/casebook/internal/service/casebook/domain/marking"
)

type Patient struct {
	Name                string `yaml:"name"`
	Age                 string `yaml:"age"`
	PMHx                string `yaml:"pmhx"`
	DHx                 string `yaml:"dhx"`
	MedicalNotes        string `yaml:"medical_notes"`
	MedicalNotesContent string `yaml:"medical_notes_content"`
	NotesPhoto          string `yaml:"notes_photo"`
	Results             string `yaml:"results"`
	ResultsContent      string `yaml:"results_content"`
}

type Doctor struct {
	Instructions    string `yaml:"instructions"`
	OpeningSentence string `yaml:"opening_sentence"`
	DivulgeFreely   string `yaml:"divulge_freely"`
	DivulgeAsked    string `yaml:"divulge_asked"`
	SocialHistory   string `yaml:"social_history"`
	PMHx            string `yaml:"pmhx"`
	FamilyHistory   string `yaml:"family_history"`
	ICE             string `yaml:"ice"`
	Reaction        string `yaml:"reaction"`
}

// Criteria names the positive and negative checklist fields of one rubric
// section.
type Criteria struct {
	Positive string `yaml:"positive"`
	Negative string `yaml:"negative"`
}

type Marking struct {
	ClinicalManagement Criteria `yaml:"clinical_management"`
	RelatingToOthers   Criteria `yaml:"relating_to_others"`
	DataGathering      Criteria `yaml:"data_gathering"`
}

// For returns the criteria fields for a rubric section.
func (m Marking) For(s marking.Section) Criteria {
	switch s {
	case marking.ClinicalManagement:
		return m.ClinicalManagement
	case marking.RelatingToOthers:
		return m.RelatingToOthers
	case marking.DataGathering:
		return m.DataGathering
	}
	return Criteria{}
}

type KeyIssues struct {
	Text      string `yaml:"text"`
	Relevance string `yaml:"relevance"`
	Mapping   string `yaml:"mapping"`
}

type Explanation struct {
	Text string `yaml:"text"`
}

type Assessment struct {
	Assessment      string `yaml:"assessment"`
	Management      string `yaml:"management"`
	ManagementImage string `yaml:"management_image"`
}

type References struct {
	Reference   string `yaml:"reference"`
	URL         string `yaml:"url"`
	Application string `yaml:"application"`
	Updated     string `yaml:"updated"`
}

// Schema is the full field mapping for a case page.
type Schema struct {
	Patient     Patient     `yaml:"patient"`
	Doctor      Doctor      `yaml:"doctor"`
	Marking     Marking     `yaml:"marking"`
	KeyIssues   KeyIssues   `yaml:"key_issues"`
	Explanation Explanation `yaml:"explanation"`
	Assessment  Assessment  `yaml:"assessment"`
	References  References  `yaml:"references"`
}

// Default returns the field names used by the case tables.
func Default() Schema {
	return Schema{
		Patient: Patient{
			Name:                "Name",
			Age:                 "Age",
			PMHx:                "PMHx Record",
			DHx:                 "DHx",
			MedicalNotes:        "Medical Notes",
			MedicalNotesContent: "Medical Notes Content",
			NotesPhoto:          "Notes Photo",
			Results:             "Results",
			ResultsContent:      "Results Content",
		},
		Doctor: Doctor{
			Instructions:    "Instructions",
			OpeningSentence: "Opening Sentence",
			DivulgeFreely:   "Divulge Freely",
			DivulgeAsked:    "Divulge Asked",
			SocialHistory:   "Social History",
			PMHx:            "PMHx RP",
			FamilyHistory:   "Family History",
			ICE:             "ICE",
			Reaction:        "Reaction",
		},
		Marking: Marking{
			ClinicalManagement: Criteria{Positive: "CM positive", Negative: "CM negative"},
			RelatingToOthers:   Criteria{Positive: "RTO positive", Negative: "RTO negative"},
			DataGathering:      Criteria{Positive: "DG positive", Negative: "DG negative"},
		},
		KeyIssues: KeyIssues{
			Text:      "Key Issues",
			Relevance: "Key Issues Relevance",
			Mapping:   "Key Issues Mapping",
		},
		Explanation: Explanation{Text: "Explanation"},
		Assessment: Assessment{
			Assessment:      "Assessment",
			Management:      "Management",
			ManagementImage: "Management Image",
		},
		References: References{
			Reference:   "References",
			URL:         "URL",
			Application: "Application",
			Updated:     "Updated",
		},
	}
}

// Load returns Default with any names overridden by the YAML file at path.
// An empty path skips the file.
func Load(path string) (Schema, error) {
	s := Default()
	if path == "" {
		return s, s.Validate()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("read field schema: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Schema{}, fmt.Errorf("decode field schema %s: %w", path, err)
	}
	return s, s.Validate()
}

// Validate fails when a logical field is unmapped or two logical fields of a
// section share one remote field.
func (s Schema) Validate() error {
	sections := map[string]map[string]string{
		"patient": {
			"name": s.Patient.Name, "age": s.Patient.Age, "pmhx": s.Patient.PMHx, "dhx": s.Patient.DHx,
			"medical_notes": s.Patient.MedicalNotes, "medical_notes_content": s.Patient.MedicalNotesContent,
			"notes_photo": s.Patient.NotesPhoto, "results": s.Patient.Results, "results_content": s.Patient.ResultsContent,
		},
		"doctor": {
			"instructions": s.Doctor.Instructions, "opening_sentence": s.Doctor.OpeningSentence,
			"divulge_freely": s.Doctor.DivulgeFreely, "divulge_asked": s.Doctor.DivulgeAsked,
			"social_history": s.Doctor.SocialHistory, "pmhx": s.Doctor.PMHx,
			"family_history": s.Doctor.FamilyHistory, "ice": s.Doctor.ICE, "reaction": s.Doctor.Reaction,
		},
		"marking": {
			"clinical_management.positive": s.Marking.ClinicalManagement.Positive,
			"clinical_management.negative": s.Marking.ClinicalManagement.Negative,
			"relating_to_others.positive":  s.Marking.RelatingToOthers.Positive,
			"relating_to_others.negative":  s.Marking.RelatingToOthers.Negative,
			"data_gathering.positive":      s.Marking.DataGathering.Positive,
			"data_gathering.negative":      s.Marking.DataGathering.Negative,
		},
		"key_issues": {
			"text": s.KeyIssues.Text, "relevance": s.KeyIssues.Relevance, "mapping": s.KeyIssues.Mapping,
		},
		"explanation": {"text": s.Explanation.Text},
		"assessment": {
			"assessment": s.Assessment.Assessment, "management": s.Assessment.Management,
			"management_image": s.Assessment.ManagementImage,
		},
		"references": {
			"reference": s.References.Reference, "url": s.References.URL,
			"application": s.References.Application, "updated": s.References.Updated,
		},
	}

	var problems []string
	for section, fields := range sections {
		seen := make(map[string]string, len(fields))
		for logical, remote := range fields {
			remote = strings.TrimSpace(remote)
			if remote == "" {
				problems = append(problems, fmt.Sprintf("%s.%s is not mapped", section, logical))
				continue
			}
			if other, dup := seen[remote]; dup {
				a, b := other, logical
				if b < a {
					a, b = b, a
				}
				problems = append(problems, fmt.Sprintf("%s.%s and %s.%s both map to %q", section, a, section, b, remote))
				continue
			}
			seen[remote] = logical
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("invalid field schema: %s", strings.Join(problems, "; "))
}
