package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/khoahotran/meapi/pkg/apperror"
)

//go:embed seed.schema.json
var documentSchema []byte

// Document is the seed file layout.
type Document struct {
	Profile struct {
		Name      string            `json:"name"`
		Email     string            `json:"email"`
		Education string            `json:"education"`
		Links     map[string]string `json:"links"`
	} `json:"profile"`
	Skills []struct {
		Name  string `json:"name"`
		Score *int   `json:"score"`
	} `json:"skills"`
	Work []struct {
		Company     string `json:"company"`
		Role        string `json:"role"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
		Description string `json:"description"`
	} `json:"work"`
	Projects []struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Skills      []string          `json:"skills"`
		Links       map[string]string `json:"links"`
	} `json:"projects"`
}

// Source yields the raw seed document. It is only called when seeding runs.
type Source func() ([]byte, error)

func FileSource(path string) Source {
	return func() ([]byte, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, apperror.NewSeed(fmt.Sprintf("cannot read seed document %s", path), err)
		}
		return b, nil
	}
}

func BytesSource(b []byte) Source {
	return func() ([]byte, error) { return b, nil }
}

// ParseDocument validates raw against the seed schema and decodes it.
func ParseDocument(raw []byte) (*Document, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(documentSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, apperror.NewSeed("seed document is not valid JSON", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return nil, apperror.NewSeed("seed document failed validation: "+strings.Join(problems, "; "), nil)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperror.NewSeed("cannot decode seed document", err)
	}
	return &doc, nil
}
