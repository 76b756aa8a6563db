// Package markdown splits content files into front matter and body and
// renders the body to HTML.
package markdown

import (
	"bufio"
	"errors"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/model"
)

const delimiter = "---"

var errUnterminated = errors.New("front matter block is not terminated")

// yaml.v3 decodes nested mappings as map[string]any, which is what the
// normalizers expect.
var yamlFormat = frontmatter.NewFormat(delimiter, delimiter, yaml.Unmarshal)

// Parse splits text into its front-matter mapping and body. Text without a
// front-matter block yields an empty mapping and the whole text as body.
func Parse(text string) (map[string]any, string, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	if !opensBlock(text) {
		return map[string]any{}, text, nil
	}
	if !closesBlock(text) {
		return nil, "", &model.ParseError{Err: errUnterminated}
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(strings.NewReader(text), &meta, yamlFormat)
	if err != nil {
		return nil, "", &model.ParseError{Err: err}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, string(body), nil
}

// ParseLenient never fails: a malformed block degrades to empty metadata and
// the full text as body.
func ParseLenient(text string) (meta map[string]any, body string, degraded bool) {
	meta, body, err := Parse(text)
	if err != nil {
		return map[string]any{}, text, true
	}
	return meta, body, false
}

func opensBlock(text string) bool {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimRight(line, " \t\r") == delimiter
}

func closesBlock(text string) bool {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		if strings.TrimRight(sc.Text(), " \t\r") == delimiter {
			return true
		}
	}
	return false
}
